package domain

import (
	"net/http"
	"sort"
	"strings"
)

const (
	CookieHeader    = "Cookie"
	CookieKeepChars = 20
	TruncatedMarker = "..."
)

type RequestRecord struct {
	ClientIP string
	URL      string
	Headers  http.Header
}

type HeaderLine struct {
	Name  string
	Value string
}

// HeaderLines returns the headers sorted by name, ready to be logged.
// Multiple values of one header are joined with ", ". Cookie values are cut
// to their first CookieKeepChars characters followed by TruncatedMarker.
func (r RequestRecord) HeaderLines() []HeaderLine {
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]HeaderLine, 0, len(names))
	for _, name := range names {
		value := strings.Join(r.Headers[name], ", ")
		if strings.EqualFold(name, CookieHeader) {
			value = TruncateCookie(value)
		}
		lines = append(lines, HeaderLine{Name: name, Value: value})
	}
	return lines
}

func TruncateCookie(value string) string {
	runes := []rune(value)
	if len(runes) > CookieKeepChars {
		runes = runes[:CookieKeepChars]
	}
	return string(runes) + TruncatedMarker
}
