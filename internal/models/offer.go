package models

import "time"

// InternshipOffer is a position published by a monitor for one session.
// Valid reports whether an internship manager has accepted the offer.
type InternshipOffer struct {
	ID        string       `db:"id" json:"id"`
	Session   string       `db:"session" json:"session"`
	MonitorID string       `db:"monitor_id" json:"monitor_id"`
	Valid     bool         `db:"valid" json:"valid"`
	Document  JSONDocument `db:"document" json:"document,omitempty"`
	Disabled  bool         `db:"disabled" json:"disabled"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}
