package httpv1

import (
	"net/http"
	"os"

	logginghelper "github.com/Egor213/ProbeTrap/internal/controller/common/logging"
	"github.com/Egor213/ProbeTrap/internal/domain"
	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/service"
	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"
	"github.com/labstack/echo/v4"
)

const (
	OutcomeTrap     = "trap"
	OutcomeFile     = "file"
	OutcomeNotFound = "not_found"
)

type ProbeController struct {
	probeService service.Probe
	logService   service.Log
	counters     *metrics.Counters
	logRequests  bool
}

func NewProbeController(ps service.Probe, ls service.Log, cnt *metrics.Counters, logRequests bool) *ProbeController {
	return &ProbeController{
		probeService: ps,
		logService:   ls,
		counters:     cnt,
		logRequests:  logRequests,
	}
}

func (pc *ProbeController) Handle(c echo.Context) error {
	requested := RequestedPath(c)
	record := NewRequestRecord(c)
	logginghelper.LogRequest(record)

	outcome, err := pc.respond(c, requested, record)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	pc.counters.RequestsHandled.Inc(c.Request().Method, outcome)

	if pc.logRequests {
		if _, err := pc.logService.Append(c.Request().Context(), record.URL); err != nil {
			logginghelper.LogAppendError(record.URL, err)
		}
	}

	return nil
}

func (pc *ProbeController) respond(c echo.Context, requested string, record domain.RequestRecord) (string, error) {
	res, err := pc.probeService.Resolve(requested)
	if err != nil {
		logginghelper.LogNotFound(requested, err)
		return OutcomeNotFound, c.JSON(http.StatusNotFound, NewNotFoundResponse(requested))
	}

	if err := serveFile(c, res.File); err != nil {
		logginghelper.LogNotFound(requested, err)
		return OutcomeNotFound, c.JSON(http.StatusNotFound, NewNotFoundResponse(requested))
	}
	logginghelper.LogServed(requested, res.File, res.Trap)

	if !res.Trap {
		return OutcomeFile, nil
	}

	// The client gets the sentinel before the broker is contacted.
	_ = http.NewResponseController(c.Response()).Flush()

	if err := pc.probeService.ReportTrapHit(c.Request().Context(), NewTrapHit(record, requested)); err != nil {
		logginghelper.LogTrapHitError(record, err)
	}
	return OutcomeTrap, nil
}

// serveFile writes the file with a content type taken from its extension.
// Nothing is written to the response when it returns an error.
func serveFile(c echo.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return os.ErrNotExist
	}

	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return nil
}
