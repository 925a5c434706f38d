package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCVs(t *testing.T) {
	student := Student{
		CVs: CVList{
			{ID: "cv1", Document: &PDFDocument{Name: "a.pdf", Content: []byte("%PDF")}},
			{ID: "cv2", Document: &PDFDocument{Name: "b.pdf"}},
			{ID: "cv3"},
			{ID: "cv4", Document: &PDFDocument{Name: "c.pdf", Content: []byte("%PDF")}},
		},
	}

	student.NormalizeCVs()

	require.Len(t, student.CVs, 2)
	assert.Equal(t, "cv1", student.CVs[0].ID)
	assert.Equal(t, "cv4", student.CVs[1].ID)
}

func TestNormalizeCVsNilList(t *testing.T) {
	student := Student{}
	student.NormalizeCVs()
	assert.Nil(t, student.CVs)
}

func TestEnrolledIn(t *testing.T) {
	student := Student{Sessions: StringList{"Fall 2025", "Winter 2026"}}
	assert.True(t, student.EnrolledIn("Fall 2025"))
	assert.False(t, student.EnrolledIn("Summer 2025"))
}
