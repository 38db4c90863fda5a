package domain

import "time"

// Resolution is the file chosen for a requested path.
type Resolution struct {
	File string
	Trap bool
}

type TrapHit struct {
	ID        string    `json:"id"`
	ClientIP  string    `json:"client_ip"`
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	UserAgent string    `json:"user_agent,omitempty"`
	Time      time.Time `json:"time"`
}
