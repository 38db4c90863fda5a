package logginghelper

import (
	"github.com/Egor213/ProbeTrap/internal/domain"
	log "github.com/sirupsen/logrus"
)

// LogRequest writes one line for the client, one for the URL and one per
// header. Cookie values arrive here already truncated.
func LogRequest(record domain.RequestRecord) {
	log.WithField("client_ip", record.ClientIP).Info("Client IP")
	log.WithField("url", record.URL).Info("Requested URL")
	for _, h := range record.HeaderLines() {
		log.WithFields(log.Fields{
			"header": h.Name,
			"value":  h.Value,
		}).Info("Header")
	}
}

func LogServed(path, file string, trap bool) {
	log.WithFields(log.Fields{
		"path": path,
		"file": file,
		"trap": trap,
	}).Debug("File served")
}

func LogNotFound(path string, err error) {
	log.WithFields(log.Fields{
		"path":  path,
		"error": err,
	}).Debug("File not found")
}

func LogAppendError(content string, err error) {
	log.WithFields(log.Fields{
		"content": content,
		"error":   err,
	}).Warn("Failed to append log")
}

func LogTrapHitError(record domain.RequestRecord, err error) {
	log.WithFields(log.Fields{
		"client_ip": record.ClientIP,
		"url":       record.URL,
		"error":     err,
	}).Warn("Failed to publish trap hit")
}
