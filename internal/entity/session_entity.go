package entity

import "time"

// Session is a named farewell event that groups messages. The id doubles as
// the external-facing slug (e.g. "martin-isi") and is immutable once created.
// Sessions are never hard-deleted; Active=false marks them soft-deleted.
type Session struct {
	Id        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
