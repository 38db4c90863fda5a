package sqlite

import (
	"context"
	"net/url"
	"strconv"
	"time"

	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverName         = "sqlite3"
	DefaultBusyTimeout = 5 * time.Second
	DefaultJournalMode = "" // sqlite default rollback journal
)

// SQLite describes a file-backed database. It holds no open handle:
// every Open call returns a fresh one that the caller must close.
type SQLite struct {
	path        string
	busyTimeout time.Duration
	journalMode string

	Builder squirrel.StatementBuilderType
}

func New(path string, opts ...Option) *SQLite {
	s := &SQLite{
		path:        path,
		busyTimeout: DefaultBusyTimeout,
		journalMode: DefaultJournalMode,
		Builder:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *SQLite) Path() string {
	return s.path
}

// DSN builds the mattn/go-sqlite3 connection string. Write transactions take
// the reserved lock up front so concurrent writers wait on the busy timeout
// instead of failing halfway through.
func (s *SQLite) DSN() string {
	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(s.busyTimeout.Milliseconds(), 10))
	params.Set("_txlock", "immediate")
	if s.journalMode != "" {
		params.Set("_journal_mode", s.journalMode)
	}
	return "file:" + s.path + "?" + params.Encode()
}

// Open creates the database file if absent and checks it is usable.
func (s *SQLite) Open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, s.DSN())
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	return db, nil
}
