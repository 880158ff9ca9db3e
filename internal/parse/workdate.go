package parse

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format of work_date and queue_date columns.
const DateLayout = "2006-01-02"

// OperatingDay returns the work date that t falls on in loc.
func OperatingDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// NextDayBoundary returns the first midnight in loc strictly after t.
func NextDayBoundary(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// WorkDate validates a client supplied date and returns it in storage format.
func WorkDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid work date %q: expected YYYY-MM-DD", raw)
	}
	return d.Format(DateLayout), nil
}
