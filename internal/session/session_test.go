package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForDateBands(t *testing.T) {
	assert.Equal(t, "Winter 2024", ForDate(date(2024, time.January, 1)))
	assert.Equal(t, "Winter 2024", ForDate(date(2024, time.May, 31)))
	assert.Equal(t, "Summer 2024", ForDate(date(2024, time.June, 1)))
	assert.Equal(t, "Summer 2024", ForDate(date(2024, time.August, 31)))
	assert.Equal(t, "Fall 2024", ForDate(date(2024, time.September, 1)))
	assert.Equal(t, "Fall 2024", ForDate(date(2024, time.December, 31)))
}

func TestNextForDateBoundaries(t *testing.T) {
	// Last day of each band rolls into the following session.
	assert.Equal(t, "Summer 2024", NextForDate(date(2024, time.May, 31)))
	assert.Equal(t, "Fall 2024", NextForDate(date(2024, time.August, 31)))
	assert.Equal(t, "Winter 2025", NextForDate(date(2024, time.December, 31)))
	assert.Equal(t, "Summer 2024", NextForDate(date(2024, time.February, 10)))
}

func TestParse(t *testing.T) {
	tag, year, err := Parse("Fall 2024")
	require.NoError(t, err)
	assert.Equal(t, TagFall, tag)
	assert.Equal(t, 2024, year)

	_, _, err = Parse("Autumn 2024")
	require.Error(t, err)
	_, _, err = Parse("Fall")
	require.Error(t, err)
	_, _, err = Parse("Fall twenty")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare("Fall 2023", "Winter 2024"))
	assert.Negative(t, Compare("Winter 2024", "Summer 2024"))
	assert.Negative(t, Compare("Summer 2024", "Fall 2024"))
	assert.Positive(t, Compare("Fall 2024", "Summer 2024"))
	assert.Zero(t, Compare("Summer 2024", "Summer 2024"))
}

func TestSortDescending(t *testing.T) {
	labels := []string{"Winter 2024", "Fall 2024", "Summer 2023", "Summer 2024"}
	SortDescending(labels)
	assert.Equal(t, []string{"Fall 2024", "Summer 2024", "Winter 2024", "Summer 2023"}, labels)
}
