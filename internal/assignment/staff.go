package assignment

import (
	"context"

	"go.uber.org/zap"

	"station-board-backend/internal/model"
	"station-board-backend/internal/parse"
	"station-board-backend/internal/store"
)

// ToggleResult is the staff row state after a toggle.
type ToggleResult struct {
	StaffID  int64             `json:"station_staff_id"`
	IsActive bool              `json:"is_active"`
	Status   model.StaffStatus `json:"status"`
}

// StaffView is a staff row with its derived status.
type StaffView struct {
	model.Staff
	Status model.StaffStatus `json:"status"`
}

// Assign binds a staff row to a room. An empty workDate means today; past
// dates are rejected.
func (e *Engine) Assign(ctx context.Context, staffID, roomID int64, workDate string) (*model.RoomStaffAssignment, error) {
	if err := requirePositive("station_staff_id", staffID); err != nil {
		return nil, err
	}
	if err := requirePositive("room_id", roomID); err != nil {
		return nil, err
	}
	date, err := e.resolveDate(workDate)
	if err != nil {
		return nil, err
	}
	today := e.Today()
	if date < today {
		return nil, store.InvalidState("cannot assign for past date %s", date)
	}

	a, err := e.store.AssignStaff(ctx, store.AssignInput{
		StaffID:  staffID,
		RoomID:   roomID,
		WorkDate: date,
		Capacity: e.cfg.MaxStaffPerRoom,
		Now:      e.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("staff assigned",
		zap.Int64("station_staff_id", staffID), zap.Int64("room_id", roomID), zap.String("work_date", date))
	e.notifyRoom(ctx, roomID, "staff_assigned")
	return a, nil
}

// Cancel deactivates today's assignment of a staff row. The operating day is
// computed here; a supplied workDate only has to agree with it.
func (e *Engine) Cancel(ctx context.Context, staffID int64, workDate string) (*model.RoomStaffAssignment, error) {
	if err := requirePositive("station_staff_id", staffID); err != nil {
		return nil, err
	}
	today := e.Today()
	if workDate != "" {
		date, err := parse.WorkDate(workDate)
		if err != nil {
			return nil, store.InvalidInput("work_date: %v", err)
		}
		if date != today {
			return nil, store.InvalidState("cannot cancel an assignment dated %s; only %s can be changed", date, today)
		}
	}

	staff, err := e.store.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.WorkDate != today {
		return nil, store.InvalidState("cannot cancel an assignment dated %s; only %s can be changed", staff.WorkDate, today)
	}

	a, err := e.store.CancelStaffAssignment(ctx, staffID, today, e.now().UTC())
	if err != nil {
		return nil, err
	}
	e.logger.Info("staff assignment cancelled",
		zap.Int64("station_staff_id", staffID), zap.Int64("room_id", a.RoomID))
	e.notify(staff.StationID, "staff_unassigned")
	return a, nil
}

// ToggleActive flips the staff row's active flag. Calling it twice restores the original state.
func (e *Engine) ToggleActive(ctx context.Context, staffID int64) (*ToggleResult, error) {
	if err := requirePositive("station_staff_id", staffID); err != nil {
		return nil, err
	}
	staff, err := e.store.ToggleStaffActive(ctx, staffID)
	if err != nil {
		return nil, err
	}
	e.notify(staff.StationID, "staff_toggled")
	return &ToggleResult{StaffID: staff.ID, IsActive: staff.IsActive, Status: staff.Status()}, nil
}

// AddStaff creates a staff row for today, or for the given future date.
func (e *Engine) AddStaff(ctx context.Context, staff *model.Staff) error {
	if err := requirePositive("station_id", staff.StationID); err != nil {
		return err
	}
	date, err := e.resolveDate(staff.WorkDate)
	if err != nil {
		return err
	}
	if date < e.Today() {
		return store.InvalidState("cannot add staff for past date %s", date)
	}
	staff.WorkDate = date
	for _, f := range []*string{&staff.WorkStartTime, &staff.WorkEndTime, &staff.BreakStartTime, &staff.BreakEndTime} {
		if *f == "" {
			continue
		}
		v, err := parse.ShiftTime(*f)
		if err != nil {
			return store.InvalidInput("%v", err)
		}
		*f = v
	}
	if err := e.store.AddStaff(ctx, staff); err != nil {
		return err
	}
	e.notify(staff.StationID, "staff_added")
	return nil
}

// StaffBoard lists today's staff of a station with their status.
func (e *Engine) StaffBoard(ctx context.Context, stationID int64) ([]StaffView, error) {
	if err := requirePositive("station_id", stationID); err != nil {
		return nil, err
	}
	rows, err := e.store.ListStaff(ctx, stationID, e.Today())
	if err != nil {
		return nil, err
	}
	views := make([]StaffView, len(rows))
	for i, st := range rows {
		views[i] = StaffView{Staff: st, Status: st.Status()}
	}
	return views, nil
}

// AvailableStaff lists today's active staff of a station, one row per name.
// Rows are ordered by name then ID, so the first row of a duplicated name wins.
// This papers over duplicate roster entries; it does not prevent them.
func (e *Engine) AvailableStaff(ctx context.Context, stationID int64) ([]StaffView, error) {
	if err := requirePositive("station_id", stationID); err != nil {
		return nil, err
	}
	rows, err := e.store.ListStaff(ctx, stationID, e.Today())
	if err != nil {
		return nil, err
	}
	return dedupeByName(rows), nil
}

func dedupeByName(rows []model.Staff) []StaffView {
	seen := make(map[string]struct{}, len(rows))
	out := make([]StaffView, 0, len(rows))
	for _, st := range rows {
		if !st.IsActive {
			continue
		}
		if _, dup := seen[st.StaffName]; dup {
			continue
		}
		seen[st.StaffName] = struct{}{}
		out = append(out, StaffView{Staff: st, Status: st.Status()})
	}
	return out
}
