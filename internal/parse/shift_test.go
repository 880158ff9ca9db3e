package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftTime(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  string
		expectErr bool
	}{
		{name: "Standard", raw: "09:00", expected: "09:00"},
		{name: "Single digit hour", raw: "9:30", expected: "09:30"},
		{name: "With seconds", raw: "18:00:00", expected: "18:00"},
		{name: "Dot separator", raw: "13.15", expected: "13:15"},
		{name: "Korean hour only", raw: "9시", expected: "09:00"},
		{name: "Korean hour and minute", raw: "9시30분", expected: "09:30"},
		{name: "Bare hour", raw: "7", expected: "07:00"},
		{name: "Empty stays empty", raw: "  ", expected: ""},
		{name: "Midnight end", raw: "24:00", expected: "24:00"},
		{name: "Minute out of range", raw: "10:75", expectErr: true},
		{name: "Hour out of range", raw: "25:00", expectErr: true},
		{name: "Garbage", raw: "noon", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ShiftTime(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}
