package domain

type LogEntry struct {
	ID      int    `db:"id"`
	Content string `db:"content"`
}
