package models

import "time"

// Student represents a learner enrolled in one or more academic sessions.
type Student struct {
	ID           string        `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	FirstName    string        `db:"first_name" json:"first_name"`
	LastName     string        `db:"last_name" json:"last_name"`
	Department   string        `db:"department" json:"department"`
	Sessions     StringList    `db:"sessions" json:"sessions"`
	Supervisors  SupervisorMap `db:"supervisors" json:"supervisors"`
	CVs          CVList        `db:"cvs" json:"cvs"`
	Signature    []byte        `db:"signature" json:"signature,omitempty"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Disabled     bool          `db:"disabled" json:"disabled"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// EnrolledIn reports whether the student is registered for the session.
func (s *Student) EnrolledIn(sessionLabel string) bool {
	return s.Sessions.Contains(sessionLabel)
}

// NormalizeCVs drops CV entries whose payload failed to load so callers never
// see half-loaded documents.
func (s *Student) NormalizeCVs() {
	if s.CVs == nil {
		return
	}
	kept := s.CVs[:0]
	for _, cv := range s.CVs {
		if cv.Document.HasContent() {
			kept = append(kept, cv)
		}
	}
	s.CVs = kept
}
