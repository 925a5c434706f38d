package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PDFDocument is a named binary payload. It has no identity of its own; it is
// always embedded in or referenced from a parent entity.
type PDFDocument struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

// HasContent reports whether the payload actually loaded.
func (d *PDFDocument) HasContent() bool {
	return d != nil && len(d.Content) > 0
}

// CV is one résumé entry in a student's CV list.
type CV struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Document *PDFDocument `json:"document,omitempty"`
}

// CVList is stored as a JSONB column.
type CVList []CV

// Value implements driver.Valuer.
func (l CVList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *CVList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringList is a JSONB-backed set of session labels.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Contains reports membership.
func (l StringList) Contains(value string) bool {
	for _, item := range l {
		if item == value {
			return true
		}
	}
	return false
}

// SupervisorMap maps a session label to the assigned supervisor id.
type SupervisorMap map[string]string

// Value implements driver.Valuer.
func (m SupervisorMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *SupervisorMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// JSONDocument stores an optional embedded PDFDocument as JSONB.
type JSONDocument struct {
	*PDFDocument
}

// Value implements driver.Valuer.
func (d JSONDocument) Value() (driver.Value, error) {
	if d.PDFDocument == nil {
		return nil, nil
	}
	return json.Marshal(d.PDFDocument)
}

// Scan implements sql.Scanner.
func (d *JSONDocument) Scan(src interface{}) error {
	if src == nil {
		d.PDFDocument = nil
		return nil
	}
	doc := &PDFDocument{}
	if err := scanJSON(src, doc); err != nil {
		return err
	}
	d.PDFDocument = doc
	return nil
}

func scanJSON(src, dest interface{}) error {
	switch raw := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
