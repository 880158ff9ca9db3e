package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"station-board-backend/internal/model"
)

// PurgeBefore removes ledger rows whose date precedes today and clears staff
// room pointers that no longer match an active assignment. Each step is an
// independent statement; a failing step is reported and the rest still run.
func (s *gormStore) PurgeBefore(ctx context.Context, today string) (ResetCounts, error) {
	var counts ResetCounts
	db := s.db.WithContext(ctx)
	var errs []error

	step := func(name string, target *int64, run func() (int64, error)) {
		n, err := run()
		if err != nil {
			s.logger.Error("daily reset step failed", zap.String("step", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*target = n
	}

	step("doctor_assignments", &counts.DoctorAssignments, func() (int64, error) {
		res := db.Where("work_date < ?", today).Delete(&model.DoctorAssignment{})
		return res.RowsAffected, res.Error
	})
	step("staff_assignments", &counts.StaffAssignments, func() (int64, error) {
		res := db.Where("work_date < ?", today).Delete(&model.RoomStaffAssignment{})
		return res.RowsAffected, res.Error
	})
	step("staff", &counts.Staff, func() (int64, error) {
		res := db.Where("work_date < ?", today).Delete(&model.Staff{})
		return res.RowsAffected, res.Error
	})
	step("patient_queue", &counts.PatientQueue, func() (int64, error) {
		res := db.Where("queue_date < ?", today).Delete(&model.PatientQueueEntry{})
		return res.RowsAffected, res.Error
	})
	step("stale_pointers", &counts.StalePointers, func() (int64, error) {
		active := db.Table("room_staff_assignments AS a").
			Select("1").
			Where("a.station_staff_id = station_staff.id").
			Where("a.room_id = station_staff.assigned_room_id").
			Where("a.work_date = station_staff.work_date").
			Where("a.is_active = ?", true)
		res := db.Model(&model.Staff{}).
			Where("assigned_room_id IS NOT NULL").
			Where("NOT EXISTS (?)", active).
			Updates(map[string]any{"assigned_room_id": nil, "assigned_at": nil})
		return res.RowsAffected, res.Error
	})

	if len(errs) > 0 {
		return counts, dbError(errors.Join(errs...), "")
	}
	return counts, nil
}
