package httpv1

import (
	"time"

	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	LogRequests    bool
	RequestTimeout time.Duration
}

func NewRouter(services *service.Services, counters *metrics.Counters, cfg RouterConfig) *echo.Echo {
	handler := echo.New()
	handler.HideBanner = true
	handler.HidePort = true
	handler.IPExtractor = echo.ExtractIPDirect()

	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestID())
	if cfg.RequestTimeout > 0 {
		handler.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	RegisterRoutes(handler, services, counters, cfg.LogRequests)
	return handler
}

func RegisterRoutes(handler *echo.Echo, services *service.Services, counters *metrics.Counters, logRequests bool) {
	pc := NewProbeController(services.Probe, services.Log, counters, logRequests)
	handler.Match(AllowedMethods(), "/*", pc.Handle)
}
