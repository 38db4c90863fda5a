package repo

import (
	"context"

	"github.com/Egor213/ProbeTrap/internal/repo/sqlitedb"
	"github.com/Egor213/ProbeTrap/pkg/sqlite"
)

type Log interface {
	Append(ctx context.Context, content string) (int, error)
}

type Repositories struct {
	Log
}

func NewRepositories(db *sqlite.SQLite) *Repositories {
	return &Repositories{
		Log: sqlitedb.NewLogRepo(db),
	}
}
