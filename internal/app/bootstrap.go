package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"
	"github.com/Egor213/ProbeTrap/pkg/sqlite"

	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 5
	defaultTimeout  = time.Second
)

// ResolveBaseDir returns the absolute static directory, relative paths are
// taken from the working directory.
func ResolveBaseDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return "", errorsUtils.WrapPathErr(err)
		}
		dir = filepath.Join(wd, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}
	if !info.IsDir() {
		return "", errorsUtils.WrapPathErr(fmt.Errorf("%s is not a directory", dir))
	}

	return filepath.Clean(dir), nil
}

// CheckStore opens the store once so a broken path aborts startup rather
// than the first append. Lock contention is retried, anything else is not.
func CheckStore(ctx context.Context, db *sqlite.SQLite) error {
	var err error
	for attempts := defaultAttempts; attempts > 0; attempts-- {
		conn, openErr := db.Open(ctx)
		if openErr == nil {
			return conn.Close()
		}
		err = openErr
		if !errorsUtils.IsContention(err) {
			break
		}

		log.Infof("Store is locked, attempts left: %d", attempts-1)
		time.Sleep(defaultTimeout)
	}
	return errorsUtils.WrapPathErr(err)
}
