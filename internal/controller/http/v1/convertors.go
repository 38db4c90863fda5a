package httpv1

import (
	"net/http"
	"strings"

	"github.com/Egor213/ProbeTrap/internal/domain"
	"github.com/labstack/echo/v4"
)

const notFoundMessage = "File not found"

type NotFoundResponse struct {
	Error         string `json:"error"`
	RequestedFile string `json:"requested_file"`
}

func NewNotFoundResponse(requested string) NotFoundResponse {
	return NotFoundResponse{
		Error:         notFoundMessage,
		RequestedFile: requested,
	}
}

func NewRequestRecord(c echo.Context) domain.RequestRecord {
	req := c.Request()
	return domain.RequestRecord{
		ClientIP: c.RealIP(),
		URL:      c.Scheme() + "://" + req.Host + req.RequestURI,
		Headers:  req.Header.Clone(),
	}
}

func NewTrapHit(record domain.RequestRecord, requested string) domain.TrapHit {
	return domain.TrapHit{
		ClientIP:  record.ClientIP,
		URL:       record.URL,
		Path:      requested,
		UserAgent: record.Headers.Get("User-Agent"),
	}
}

// RequestedPath is the catch-all path relative to the base directory.
// When the client escaped characters echo matches on the raw path, so the
// decoded path is taken from the URL instead.
func RequestedPath(c echo.Context) string {
	req := c.Request()
	if req.URL.RawPath != "" {
		return strings.TrimPrefix(req.URL.Path, "/")
	}
	return c.Param("*")
}

func AllowedMethods() []string {
	return []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
}
