package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Egor213/ProbeTrap/internal/broker"
	"github.com/Egor213/ProbeTrap/internal/domain"
	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/validators"
	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"

	"github.com/gofrs/uuid"
)

type ProbeService struct {
	static         StaticConfig
	brokerProducer broker.Producer
	publish        bool
	counters       *metrics.Counters
}

func NewProbeService(static StaticConfig, p broker.Producer, cnt *metrics.Counters) *ProbeService {
	publish := true
	if _, nop := p.(broker.NopProducer); p == nil || nop {
		p = broker.NopProducer{}
		publish = false
	}
	return &ProbeService{
		static:         static,
		brokerProducer: p,
		publish:        publish,
		counters:       cnt,
	}
}

func (s *ProbeService) IsTrap(requested string) bool {
	return s.static.TrapMarker != "" && strings.Contains(requested, s.static.TrapMarker)
}

// Resolve picks the file answering requested, a path relative to the base
// directory. A trap match always wins and yields the sentinel whether or not
// requested exists. Otherwise only regular files inside the base directory
// are served; everything else is ErrFileNotFound.
func (s *ProbeService) Resolve(requested string) (domain.Resolution, error) {
	if s.IsTrap(requested) {
		return domain.Resolution{
			File: filepath.Join(s.static.BaseDir, s.static.Sentinel),
			Trap: true,
		}, nil
	}

	full, err := validators.ContainedPath(s.static.BaseDir, requested)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if _, err := validators.ResolvedPath(s.static.BaseDir, full); err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	info, err := os.Stat(full)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return domain.Resolution{}, fmt.Errorf("%w: %s is not a regular file", ErrFileNotFound, requested)
	}

	return domain.Resolution{File: full}, nil
}

// ReportTrapHit publishes hit keyed by client IP. Without a configured
// broker it does nothing and counts nothing.
func (s *ProbeService) ReportTrapHit(ctx context.Context, hit domain.TrapHit) error {
	if !s.publish {
		return nil
	}
	if hit.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return errorsUtils.WrapPathErr(err)
		}
		hit.ID = id.String()
	}
	if hit.Time.IsZero() {
		hit.Time = time.Now().UTC()
	}

	value, err := json.Marshal(hit)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if err := s.brokerProducer.SendMessage(ctx, []byte(hit.ClientIP), value); err != nil {
		s.counters.TrapHitsSent.Inc("failed")
		return errorsUtils.WrapPathErr(err)
	}
	s.counters.TrapHitsSent.Inc("ok")
	return nil
}
