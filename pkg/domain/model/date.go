package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the storage and exchange format of calendar dates.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date for optional values.
func DatePtr(t time.Time) *time.Time {
	v := Date(t)
	return &v
}

// ParseDate reads a calendar date. Blank input yields nil. Only the first
// whitespace separated token is considered so "2025-01-02 00:00:00" works.
func ParseDate(s string) (*time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	head := strings.TrimSuffix(fields[0], "T00:00:00Z")
	if i := strings.IndexByte(head, 'T'); i > 0 {
		head = head[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, head); err == nil {
			return DatePtr(t), nil
		}
	}
	return nil, goerr.New("unrecognised date", goerr.V(ValueKey, s))
}

// FormatDate renders an optional date, blank for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
