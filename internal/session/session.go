package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Tag identifies one of the three academic terms in a year.
type Tag string

const (
	TagWinter Tag = "Winter"
	TagSummer Tag = "Summer"
	TagFall   Tag = "Fall"
)

// Month bands are a fixed business rule: Winter runs January through May,
// Summer June through August, Fall September through December.
const (
	summerStartMonth = time.June
	fallStartMonth   = time.September
)

// tagRank orders tags within a year: Winter < Summer < Fall.
var tagRank = map[Tag]int{TagWinter: 0, TagSummer: 1, TagFall: 2}

// Label formats a session as "{Tag} {Year}".
func Label(tag Tag, year int) string {
	return fmt.Sprintf("%s %d", tag, year)
}

// ForDate maps a calendar date to the session label containing it.
// Only the calendar day matters; no timezone handling.
func ForDate(date time.Time) string {
	tag := TagWinter
	switch {
	case date.Month() >= fallStartMonth:
		tag = TagFall
	case date.Month() >= summerStartMonth:
		tag = TagSummer
	}
	return Label(tag, date.Year())
}

// NextForDate returns the session label following the one containing date.
// Fall rolls over into the next year's Winter.
func NextForDate(date time.Time) string {
	tag, year, _ := Parse(ForDate(date))
	switch tag {
	case TagWinter:
		return Label(TagSummer, year)
	case TagSummer:
		return Label(TagFall, year)
	default:
		return Label(TagWinter, year+1)
	}
}

// Parse splits a "{Tag} {Year}" label into its components.
func Parse(label string) (Tag, int, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed session label %q", label)
	}
	tag := Tag(parts[0])
	if _, ok := tagRank[tag]; !ok {
		return "", 0, fmt.Errorf("unknown session tag %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("malformed session year %q", parts[1])
	}
	return tag, year, nil
}

// Year extracts the year component, returning 0 for malformed labels.
func Year(label string) int {
	_, year, err := Parse(label)
	if err != nil {
		return 0
	}
	return year
}

// Compare orders two labels by (year, tag): year ascending, and within a
// year Winter < Summer < Fall. Malformed labels sort before valid ones.
func Compare(a, b string) int {
	tagA, yearA, errA := Parse(a)
	tagB, yearB, errB := Parse(b)
	if errA != nil || errB != nil {
		switch {
		case errA == nil:
			return 1
		case errB == nil:
			return -1
		default:
			return strings.Compare(a, b)
		}
	}
	if yearA != yearB {
		return yearA - yearB
	}
	return tagRank[tagA] - tagRank[tagB]
}

// SortDescending orders labels newest first, in place.
func SortDescending(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) > 0
	})
}

// SortAscending orders labels oldest first, in place.
func SortAscending(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) < 0
	})
}
