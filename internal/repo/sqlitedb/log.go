package sqlitedb

import (
	"context"
	"fmt"

	"github.com/Egor213/ProbeTrap/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"
	"github.com/Egor213/ProbeTrap/pkg/sqlite"
)

const createLogsTable = `CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL
)`

type LogRepo struct {
	*sqlite.SQLite
}

func NewLogRepo(db *sqlite.SQLite) *LogRepo {
	return &LogRepo{db}
}

// Append stores content as a new row of the logs table and returns its id.
// A fresh handle is opened for every call and closed before returning.
func (r *LogRepo) Append(ctx context.Context, content string) (id int, err error) {
	db, err := r.Open(ctx)
	if err != nil {
		return 0, storageErr(err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			id, err = 0, storageErr(cerr)
		}
	}()

	if _, err = db.ExecContext(ctx, createLogsTable); err != nil {
		return 0, storageErr(err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, storageErr(err)
	}
	defer tx.Rollback()

	sql, args, err := r.Builder.
		Insert("logs").
		Columns("content").
		Values(content).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	if err = tx.QueryRowxContext(ctx, sql, args...).Scan(&id); err != nil {
		return 0, storageErr(err)
	}

	if err = tx.Commit(); err != nil {
		return 0, storageErr(err)
	}

	return id, nil
}

func storageErr(err error) error {
	if errorsUtils.IsContention(err) {
		return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w: %w", repoerrs.ErrStorageIO, repoerrs.ErrLocked, err))
	}
	return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", repoerrs.ErrStorageIO, err))
}
