package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egor213/ProbeTrap/internal/broker"
	"github.com/Egor213/ProbeTrap/internal/domain"
	"github.com/Egor213/ProbeTrap/internal/metrics"
	brokermocks "github.com/Egor213/ProbeTrap/internal/mocks/broker"
	countermocks "github.com/Egor213/ProbeTrap/internal/mocks/counters"
	"github.com/Egor213/ProbeTrap/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStaticDir(t *testing.T) (root, base string) {
	t.Helper()
	root = t.TempDir()
	base = filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "ok.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "css", "site.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))
	return root, base
}

func newProbeService(base string, p *brokermocks.MockProducer) *service.ProbeService {
	static := service.StaticConfig{BaseDir: base, Sentinel: "ok.png", TrapMarker: "verify_"}
	if p == nil {
		return service.NewProbeService(static, nil, metrics.NewTestCounters())
	}
	return service.NewProbeService(static, p, metrics.NewTestCounters())
}

func TestProbeService_Resolve(t *testing.T) {
	_, base := newStaticDir(t)
	s := newProbeService(base, nil)

	testCases := []struct {
		name      string
		requested string
		want      domain.Resolution
		wantErr   bool
	}{
		{
			name:      "trap at root",
			requested: "verify_abc",
			want:      domain.Resolution{File: filepath.Join(base, "ok.png"), Trap: true},
		},
		{
			name:      "trap nested",
			requested: "a/verify_x/b",
			want:      domain.Resolution{File: filepath.Join(base, "ok.png"), Trap: true},
		},
		{
			name:      "trap beats traversal",
			requested: "../verify_secret.txt",
			want:      domain.Resolution{File: filepath.Join(base, "ok.png"), Trap: true},
		},
		{
			name:      "existing file",
			requested: "css/site.css",
			want:      domain.Resolution{File: filepath.Join(base, "css", "site.css")},
		},
		{
			name:      "missing file",
			requested: "nope.css",
			wantErr:   true,
		},
		{
			name:      "directory",
			requested: "css",
			wantErr:   true,
		},
		{
			name:      "empty path",
			requested: "",
			wantErr:   true,
		},
		{
			name:      "traversal",
			requested: "../secret.txt",
			wantErr:   true,
		},
		{
			name:      "marker case differs",
			requested: "VERIFY_abc",
			wantErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Resolve(tc.requested)
			if tc.wantErr {
				assert.ErrorIs(t, err, service.ErrFileNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProbeService_ResolveRejectsEscapingSymlink(t *testing.T) {
	root, base := newStaticDir(t)
	require.NoError(t, os.Symlink(filepath.Join(root, "secret.txt"), filepath.Join(base, "leak.txt")))
	s := newProbeService(base, nil)

	_, err := s.Resolve("leak.txt")

	assert.ErrorIs(t, err, service.ErrFileNotFound)
}

func TestProbeService_EmptyMarkerNeverTraps(t *testing.T) {
	_, base := newStaticDir(t)
	s := service.NewProbeService(service.StaticConfig{BaseDir: base, Sentinel: "ok.png"}, nil, metrics.NewTestCounters())

	assert.False(t, s.IsTrap("anything"))
	_, err := s.Resolve("anything")
	assert.ErrorIs(t, err, service.ErrFileNotFound)
}

func TestProbeService_ReportTrapHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, base := newStaticDir(t)
	producer := brokermocks.NewMockProducer(ctrl)
	s := newProbeService(base, producer)
	ctx := context.Background()

	var sent domain.TrapHit
	producer.EXPECT().
		SendMessage(ctx, []byte("10.0.0.1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []byte, value []byte) error {
			return json.Unmarshal(value, &sent)
		})

	err := s.ReportTrapHit(ctx, domain.TrapHit{
		ClientIP: "10.0.0.1",
		URL:      "http://probe.local/verify_abc",
		Path:     "verify_abc",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, "10.0.0.1", sent.ClientIP)
	assert.Equal(t, "verify_abc", sent.Path)
	assert.WithinDuration(t, time.Now(), sent.Time, time.Minute)
}

func TestProbeService_ReportTrapHitBrokerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, base := newStaticDir(t)
	producer := brokermocks.NewMockProducer(ctrl)
	s := newProbeService(base, producer)

	brokerErr := errors.New("broker down")
	producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(brokerErr)

	err := s.ReportTrapHit(context.Background(), domain.TrapHit{ID: "fixed", ClientIP: "10.0.0.1"})
	assert.ErrorIs(t, err, brokerErr)
}

func TestProbeService_NilProducerIsNop(t *testing.T) {
	_, base := newStaticDir(t)
	s := newProbeService(base, nil)

	assert.NoError(t, s.ReportTrapHit(context.Background(), domain.TrapHit{ClientIP: "10.0.0.1"}))
}

func TestProbeService_NoBrokerCountsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, base := newStaticDir(t)
	static := service.StaticConfig{BaseDir: base, Sentinel: "ok.png", TrapMarker: "verify_"}

	for name, producer := range map[string]broker.Producer{
		"nil": nil,
		"nop": broker.NopProducer{},
	} {
		t.Run(name, func(t *testing.T) {
			// Any counter call fails the test: the mock has no expectations.
			trapHits := countermocks.NewMockCounter(ctrl)
			counters := &metrics.Counters{TrapHitsSent: trapHits}

			s := service.NewProbeService(static, producer, counters)

			assert.NoError(t, s.ReportTrapHit(context.Background(), domain.TrapHit{ClientIP: "10.0.0.1"}))
		})
	}
}

func TestProbeService_ReportTrapHitCountsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, base := newStaticDir(t)
	static := service.StaticConfig{BaseDir: base, Sentinel: "ok.png", TrapMarker: "verify_"}
	producer := brokermocks.NewMockProducer(ctrl)
	trapHits := countermocks.NewMockCounter(ctrl)
	s := service.NewProbeService(static, producer, &metrics.Counters{TrapHitsSent: trapHits})

	gomock.InOrder(
		producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		trapHits.EXPECT().Inc("ok"),
		producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")),
		trapHits.EXPECT().Inc("failed"),
	)

	assert.NoError(t, s.ReportTrapHit(context.Background(), domain.TrapHit{ClientIP: "10.0.0.1"}))
	assert.Error(t, s.ReportTrapHit(context.Background(), domain.TrapHit{ClientIP: "10.0.0.1"}))
}
