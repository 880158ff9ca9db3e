package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffStatus(t *testing.T) {
	room := int64(7)
	testCases := []struct {
		name     string
		staff    Staff
		expected StaffStatus
	}{
		{name: "inactive without room", staff: Staff{IsActive: false}, expected: StaffOffline},
		{name: "inactive with room", staff: Staff{IsActive: false, AssignedRoomID: &room}, expected: StaffOffline},
		{name: "active without room", staff: Staff{IsActive: true}, expected: StaffAvailable},
		{name: "active with room", staff: Staff{IsActive: true, AssignedRoomID: &room}, expected: StaffAssigned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.staff.Status())
		})
	}
}

func TestDefaultRoomNumber(t *testing.T) {
	assert.Equal(t, "Room 1", DefaultRoomNumber(1))
	assert.Equal(t, "Room 3", DefaultRoomNumber(3))
}
