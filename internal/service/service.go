package service

import (
	"context"

	"github.com/Egor213/ProbeTrap/internal/broker"
	"github.com/Egor213/ProbeTrap/internal/domain"
	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/repo"
)

type Log interface {
	Append(ctx context.Context, content string) (int, error)
}

type Probe interface {
	Resolve(requested string) (domain.Resolution, error)
	ReportTrapHit(ctx context.Context, hit domain.TrapHit) error
}

type Services struct {
	Log
	Probe
}

type StaticConfig struct {
	BaseDir    string
	Sentinel   string
	TrapMarker string
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Static         StaticConfig
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log:   NewLogService(deps.Repos.Log, deps.Counters),
		Probe: NewProbeService(deps.Static, deps.BrokerProducer, deps.Counters),
	}
}
