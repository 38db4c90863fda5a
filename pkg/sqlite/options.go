package sqlite

import "time"

type Option func(*SQLite)

func BusyTimeout(timeout time.Duration) Option {
	return func(s *SQLite) {
		s.busyTimeout = timeout
	}
}

func JournalMode(mode string) Option {
	return func(s *SQLite) {
		s.journalMode = mode
	}
}
