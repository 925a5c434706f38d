package models

import "time"

// ApplicationStatus tracks where an application stands in the hiring flow.
type ApplicationStatus string

const (
	StatusWaiting   ApplicationStatus = "WAITING"
	StatusAccepted  ApplicationStatus = "ACCEPTED"
	StatusRefused   ApplicationStatus = "REFUSED"
	StatusCompleted ApplicationStatus = "COMPLETED"
)

// Completed reports whether the status denotes a finished placement.
func (s ApplicationStatus) Completed() bool {
	return s == StatusCompleted
}

// InternshipApplication links one student to one offer. Its session is always
// the session of the referenced offer.
type InternshipApplication struct {
	ID            string            `db:"id" json:"id"`
	StudentID     string            `db:"student_id" json:"student_id"`
	OfferID       string            `db:"offer_id" json:"offer_id"`
	Status        ApplicationStatus `db:"status" json:"status"`
	InterviewDate *time.Time        `db:"interview_date" json:"interview_date,omitempty"`
	Disabled      bool              `db:"disabled" json:"disabled"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}
