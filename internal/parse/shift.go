package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var shiftRe = regexp.MustCompile(`^(\d{1,2})\s*[:시h.]\s*(\d{2})?\s*(?:분)?$`)

// ShiftTime normalises roster clock values such as "9:00", "09.30" or "9시" to "HH:MM".
// An empty input stays empty.
func ShiftTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	// Bare hour, e.g. "9"
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 24 {
			return "", fmt.Errorf("unable to parse shift time: %q", raw)
		}
		return fmt.Sprintf("%02d:00", n), nil
	}

	// Drop a seconds suffix, e.g. "09:00:00"
	if strings.Count(s, ":") == 2 {
		s = s[:strings.LastIndex(s, ":")]
	}

	m := shiftRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unable to parse shift time: %q", raw)
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 24 || minute > 59 || (hour == 24 && minute != 0) {
		return "", fmt.Errorf("shift time out of range: %q", raw)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
