package assignment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-board-backend/internal/db/dbtest"
	"station-board-backend/internal/model"
	"station-board-backend/internal/store"
)

type event struct {
	stationID int64
	reason    string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingNotifier) Notify(stationID int64, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{stationID, reason})
}

func (r *recordingNotifier) reasons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.reason
	}
	return out
}

// 23:30 UTC on the 17th is already the 18th in Seoul.
var fixedNow = time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)

const (
	today     = "2026-10-18"
	yesterday = "2026-10-17"
)

func newTestEngine(t *testing.T) (*Engine, store.Store, *recordingNotifier) {
	t.Helper()
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	st := store.NewGormStore(dbtest.New(t), nil)
	n := &recordingNotifier{}
	e := NewEngine(st, Config{MaxStaffPerRoom: 3, Location: seoul}, n, nil,
		WithClock(func() time.Time { return fixedNow }))
	return e, st, n
}

func seedStation(t *testing.T, st store.Store, id int64) {
	t.Helper()
	require.NoError(t, st.CreateStation(context.Background(),
		&model.Station{ID: id, Name: "Endoscopy", Floor: "3F", Department: "GI"}))
}

func seedStaff(t *testing.T, st store.Store, id, stationID int64, name, workDate string) *model.Staff {
	t.Helper()
	s := &model.Staff{ID: id, StationID: stationID, StaffName: name, StaffType: "nurse", WorkDate: workDate}
	require.NoError(t, st.AddStaff(context.Background(), s))
	return s
}

func TestEngine_TodayUsesConfiguredLocation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	assert.Equal(t, today, e.Today())
	assert.Equal(t, 3, e.Capacity())
}

func TestEngine_Station63Scenario(t *testing.T) {
	e, st, n := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	roomA, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope A"})
	require.NoError(t, err)
	_, err = e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope B"})
	require.NoError(t, err)

	// room_count is 2; an unnumbered room becomes "Room 3".
	room3, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Recovery"})
	require.NoError(t, err)
	assert.Equal(t, "Room 3", room3.RoomNumber)
	station, err := st.GetStation(ctx, 63)
	require.NoError(t, err)
	assert.Equal(t, 3, station.RoomCount)

	seedStaff(t, st, 101, 63, "Kim", today)

	first, err := e.Assign(ctx, 101, room3.ID, "")
	require.NoError(t, err)
	assert.Equal(t, today, first.WorkDate)
	staff, err := st.GetStaff(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, model.StaffAssigned, staff.Status())

	second, err := e.Assign(ctx, 101, roomA.ID, today)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var active []model.RoomStaffAssignment
	require.NoError(t, st.DB().Where("station_staff_id = ? AND is_active = ?", 101, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, roomA.ID, active[0].RoomID)

	cancelled, err := e.Cancel(ctx, 101, "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, cancelled.ID)
	assert.False(t, cancelled.IsActive)

	_, err = e.Cancel(ctx, 101, "")
	assert.True(t, store.IsKind(err, store.KindNotFound))

	assert.Equal(t, []string{
		"room_created", "room_created", "room_created",
		"staff_assigned", "staff_assigned", "staff_unassigned",
	}, n.reasons())
}

func TestEngine_AssignValidation(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	room, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope"})
	require.NoError(t, err)
	seedStaff(t, st, 101, 63, "Kim", today)

	tests := []struct {
		name     string
		staffID  int64
		roomID   int64
		workDate string
		kind     store.ErrorKind
	}{
		{"zero staff id", 0, room.ID, "", store.KindInvalidInput},
		{"negative room id", 101, -1, "", store.KindInvalidInput},
		{"malformed date", 101, room.ID, "18/10/2026", store.KindInvalidInput},
		{"past date", 101, room.ID, yesterday, store.KindInvalidState},
		{"missing room", 101, 999, "", store.KindNotFound},
		{"missing staff", 555, room.ID, "", store.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Assign(ctx, tt.staffID, tt.roomID, tt.workDate)
			assert.Equal(t, tt.kind, store.KindOf(err))
		})
	}
}

func TestEngine_AssignCapacity(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	room, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope"})
	require.NoError(t, err)

	for i, name := range []string{"Kim", "Lee", "Park"} {
		seedStaff(t, st, int64(101+i), 63, name, today)
		_, err := e.Assign(ctx, int64(101+i), room.ID, "")
		require.NoError(t, err)
	}
	seedStaff(t, st, 104, 63, "Choi", today)
	_, err = e.Assign(ctx, 104, room.ID, "")
	assert.True(t, store.IsKind(err, store.KindCapacityExceeded))

	rooms, err := e.AvailableRooms(ctx, 63)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, int64(3), rooms[0].CurrentStaffCount)
	assert.False(t, rooms[0].IsAvailable)
}

func TestEngine_CancelRejectsOtherDays(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	room, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope"})
	require.NoError(t, err)

	// Yesterday's row still holds an active assignment.
	seedStaff(t, st, 201, 63, "Kim", yesterday)
	_, err = st.AssignStaff(ctx, store.AssignInput{StaffID: 201, RoomID: room.ID, WorkDate: yesterday, Capacity: 3, Now: fixedNow})
	require.NoError(t, err)

	_, err = e.Cancel(ctx, 201, "")
	assert.True(t, store.IsKind(err, store.KindInvalidState))

	_, err = e.Cancel(ctx, 201, yesterday)
	assert.True(t, store.IsKind(err, store.KindInvalidState))

	seedStaff(t, st, 202, 63, "Lee", today)
	_, err = e.Cancel(ctx, 202, "2026-10-19")
	assert.True(t, store.IsKind(err, store.KindInvalidState))

	_, err = e.Cancel(ctx, 202, today)
	assert.True(t, store.IsKind(err, store.KindNotFound))
}

func TestEngine_ToggleActive(t *testing.T) {
	e, st, n := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	room, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope"})
	require.NoError(t, err)
	seedStaff(t, st, 101, 63, "Kim", today)

	off, err := e.ToggleActive(ctx, 101)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	assert.Equal(t, model.StaffOffline, off.Status)

	_, err = e.Assign(ctx, 101, room.ID, "")
	assert.True(t, store.IsKind(err, store.KindInvalidState))

	on, err := e.ToggleActive(ctx, 101)
	require.NoError(t, err)
	assert.True(t, on.IsActive)
	assert.Equal(t, model.StaffAvailable, on.Status)

	_, err = e.ToggleActive(ctx, 0)
	assert.True(t, store.IsKind(err, store.KindInvalidInput))

	assert.Contains(t, n.reasons(), "staff_toggled")
}

func TestEngine_AvailableStaffCollapsesDuplicateNames(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	seedStaff(t, st, 301, 63, "Park", today)
	seedStaff(t, st, 302, 63, "Kim", today)
	seedStaff(t, st, 303, 63, "Kim", today)
	seedStaff(t, st, 304, 63, "Lee", today)
	seedStaff(t, st, 305, 63, "Yoon", yesterday)
	_, err := e.ToggleActive(ctx, 304)
	require.NoError(t, err)

	available, err := e.AvailableStaff(ctx, 63)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, int64(302), available[0].ID)
	assert.Equal(t, "Park", available[1].StaffName)

	board, err := e.StaffBoard(ctx, 63)
	require.NoError(t, err)
	require.Len(t, board, 4)
	statuses := map[int64]model.StaffStatus{}
	for _, v := range board {
		statuses[v.ID] = v.Status
	}
	assert.Equal(t, model.StaffOffline, statuses[304])
	assert.Equal(t, model.StaffAvailable, statuses[303])
}

func TestEngine_AddStaff(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)

	s := &model.Staff{StationID: 63, StaffName: "Kim", WorkStartTime: "8", WorkEndTime: "17시 30분"}
	require.NoError(t, e.AddStaff(ctx, s))
	assert.Equal(t, today, s.WorkDate)
	assert.Equal(t, "08:00", s.WorkStartTime)
	assert.Equal(t, "17:30", s.WorkEndTime)

	err := e.AddStaff(ctx, &model.Staff{StationID: 63, StaffName: "Lee", WorkDate: yesterday})
	assert.True(t, store.IsKind(err, store.KindInvalidState))

	err = e.AddStaff(ctx, &model.Staff{StationID: 63, StaffName: "Lee", WorkStartTime: "noon"})
	assert.True(t, store.IsKind(err, store.KindInvalidInput))
}

func TestEngine_DeleteRoomAndDoctors(t *testing.T) {
	e, st, n := newTestEngine(t)
	ctx := context.Background()
	seedStation(t, st, 63)
	room, err := e.CreateRoom(ctx, store.CreateRoomInput{StationID: 63, RoomName: "Scope"})
	require.NoError(t, err)
	doctor := &model.Doctor{Name: "Dr. Han"}
	require.NoError(t, st.CreateDoctor(ctx, doctor))

	_, err = e.AssignDoctor(ctx, doctor.ID, room.ID)
	require.NoError(t, err)
	doctors, err := e.RoomDoctors(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, today, doctors[0].WorkDate)

	_, err = e.UnassignDoctor(ctx, doctor.ID, room.ID)
	require.NoError(t, err)
	_, err = e.UnassignDoctor(ctx, doctor.ID, room.ID)
	assert.True(t, store.IsKind(err, store.KindNotFound))

	deleted, err := e.DeleteRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, deleted.ID)

	_, err = e.DeleteRoom(ctx, room.ID)
	assert.True(t, store.IsKind(err, store.KindNotFound))

	rooms, err := e.AvailableRooms(ctx, 63)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	assert.Equal(t, []string{"room_created", "doctor_assigned", "doctor_unassigned", "room_deleted"}, n.reasons())
}

func TestDedupeByName(t *testing.T) {
	rows := []model.Staff{
		{ID: 1, StaffName: "Kim", IsActive: true},
		{ID: 2, StaffName: "Kim", IsActive: true},
		{ID: 3, StaffName: "Lee", IsActive: false},
		{ID: 4, StaffName: "Lee", IsActive: true},
	}
	got := dedupeByName(rows)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}
