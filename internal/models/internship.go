package models

import "time"

// Internship records a placement created from a completed application, along
// with the documents gathered over its lifetime.
type Internship struct {
	ID                   string       `db:"id" json:"id"`
	ApplicationID        string       `db:"application_id" json:"application_id"`
	Contract             JSONDocument `db:"contract" json:"contract,omitempty"`
	StudentEvaluation    JSONDocument `db:"student_evaluation" json:"student_evaluation,omitempty"`
	EnterpriseEvaluation JSONDocument `db:"enterprise_evaluation" json:"enterprise_evaluation,omitempty"`
	Disabled             bool         `db:"disabled" json:"disabled"`
	CreatedAt            time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updated_at"`
}

// EvaluationKind selects which internship evaluation document is meant.
type EvaluationKind string

const (
	EvaluationStudent    EvaluationKind = "student"
	EvaluationEnterprise EvaluationKind = "enterprise"
)
