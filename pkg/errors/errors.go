package errorsUtils

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/mattn/go-sqlite3"
)

func Is(err error, code sqlite3.ErrNo) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == code
	}
	return false
}

func IsBusy(err error) bool {
	return Is(err, sqlite3.ErrBusy)
}

func IsLocked(err error) bool {
	return Is(err, sqlite3.ErrLocked)
}

// IsContention reports whether another writer holds the database lock.
func IsContention(err error) bool {
	return IsBusy(err) || IsLocked(err)
}

func WrapPathErr(err error) error {
	pc, _, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return fmt.Errorf("[%s:%d] %w", fn, line, err)
}
