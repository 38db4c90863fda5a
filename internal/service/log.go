package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/repo"
	"github.com/Egor213/ProbeTrap/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"
)

type LogService struct {
	logRepo  repo.Log
	counters *metrics.Counters
}

func NewLogService(lr repo.Log, cnt *metrics.Counters) *LogService {
	return &LogService{
		logRepo:  lr,
		counters: cnt,
	}
}

// Append persists content and returns the id assigned by the store.
// It never retries; the returned error still matches repoerrs.ErrStorageIO.
func (s *LogService) Append(ctx context.Context, content string) (int, error) {
	id, err := s.logRepo.Append(ctx, content)
	if err != nil {
		s.counters.LogsAppended.Inc("failed")
		if errors.Is(err, repoerrs.ErrLocked) {
			return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrStoreLocked, err))
		}
		return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotAppendLog, err))
	}
	s.counters.LogsAppended.Inc("ok")
	return id, nil
}
