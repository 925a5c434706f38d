package models

import "time"

// Role distinguishes the account types sharing the staff table. The first
// character of a username encodes the role by institutional convention; the
// role is resolved once here and never re-derived by string inspection.
type Role string

const (
	RoleStudent           Role = "STUDENT"
	RoleSupervisor        Role = "SUPERVISOR"
	RoleMonitor           Role = "MONITOR"
	RoleInternshipManager Role = "INTERNSHIP_MANAGER"
)

// RoleForUsername resolves the username prefix convention: 'G' internship
// manager, 'S' supervisor, 'M' monitor, 'E' student. Any other prefix
// matches no role.
func RoleForUsername(username string) (Role, bool) {
	if username == "" {
		return "", false
	}
	switch username[0] {
	case 'G':
		return RoleInternshipManager, true
	case 'S':
		return RoleSupervisor, true
	case 'M':
		return RoleMonitor, true
	case 'E':
		return RoleStudent, true
	default:
		return "", false
	}
}

// Staff covers supervisors, monitors (employer contacts) and internship
// managers. Sessions is populated for supervisors only.
type Staff struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         Role       `db:"role" json:"role"`
	Sessions     StringList `db:"sessions" json:"sessions,omitempty"`
	Signature    []byte     `db:"signature" json:"signature,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Disabled     bool       `db:"disabled" json:"disabled"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
