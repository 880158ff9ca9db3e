package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"station-board-backend/internal/model"
)

// AddStaff creates a staff row for its work date. New rows start active and unassigned.
func (s *gormStore) AddStaff(ctx context.Context, staff *model.Staff) error {
	if strings.TrimSpace(staff.StaffName) == "" {
		return InvalidInput("staff name is required")
	}
	if staff.WorkDate == "" {
		return InvalidInput("work date is required")
	}

	var station model.Station
	if err := s.db.WithContext(ctx).Select("id").First(&station, staff.StationID).Error; err != nil {
		return dbError(err, fmt.Sprintf("station %d not found", staff.StationID))
	}

	staff.IsActive = true
	staff.AssignedRoomID = nil
	staff.AssignedAt = nil
	if err := s.db.WithContext(ctx).Create(staff).Error; err != nil {
		return dbError(err, "")
	}
	return nil
}

// GetStaff loads a staff row by ID.
func (s *gormStore) GetStaff(ctx context.Context, staffID int64) (*model.Staff, error) {
	var staff model.Staff
	if err := s.db.WithContext(ctx).First(&staff, staffID).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("staff %d not found", staffID))
	}
	return &staff, nil
}

// ListStaff returns the staff rows of workDate sorted by name then ID.
// A zero stationID lists every station.
func (s *gormStore) ListStaff(ctx context.Context, stationID int64, workDate string) ([]model.Staff, error) {
	q := s.db.WithContext(ctx).Where("work_date = ?", workDate)
	if stationID > 0 {
		q = q.Where("station_id = ?", stationID)
	}
	staff := []model.Staff{}
	if err := q.Order("staff_name ASC").Order("id ASC").Find(&staff).Error; err != nil {
		return nil, dbError(err, "")
	}
	return staff, nil
}

// AssignStaff binds a staff row to a room for in.WorkDate. The staff and room
// rows are locked, in that order, for the whole transaction so two requests
// cannot both pass the capacity check or both leave an active assignment.
func (s *gormStore) AssignStaff(ctx context.Context, in AssignInput) (*model.RoomStaffAssignment, error) {
	var assignment model.RoomStaffAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff model.Staff
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND work_date = ?", in.StaffID, in.WorkDate).
			First(&staff).Error; err != nil {
			return dbError(err, fmt.Sprintf("staff %d not found for %s", in.StaffID, in.WorkDate))
		}
		if !staff.IsActive {
			return InvalidState("staff %d is inactive", staff.ID)
		}

		var room model.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			return dbError(err, fmt.Sprintf("room %d not found", in.RoomID))
		}

		var occupied int64
		if err := tx.Model(&model.RoomStaffAssignment{}).
			Where("room_id = ? AND work_date = ? AND is_active = ? AND station_staff_id <> ?", room.ID, in.WorkDate, true, staff.ID).
			Count(&occupied).Error; err != nil {
			return dbError(err, "")
		}
		if occupied >= int64(in.Capacity) {
			return CapacityExceeded("room %s is full (%d/%d)", room.RoomNumber, occupied, in.Capacity)
		}

		if err := tx.Model(&model.RoomStaffAssignment{}).
			Where("station_staff_id = ? AND work_date = ? AND is_active = ?", staff.ID, in.WorkDate, true).
			Updates(map[string]any{"is_active": false, "deactivated_at": in.Now}).Error; err != nil {
			return dbError(err, "")
		}

		assignment = model.RoomStaffAssignment{
			StationStaffID: staff.ID,
			RoomID:         room.ID,
			WorkDate:       in.WorkDate,
			IsActive:       true,
			AssignedAt:     in.Now,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return dbError(err, "")
		}

		if err := tx.Model(&staff).Updates(map[string]any{
			"assigned_room_id": room.ID,
			"assigned_at":      in.Now,
		}).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CancelStaffAssignment deactivates the staff member's active assignment for
// workDate and clears the staff row's room pointer. The deactivated record is returned.
func (s *gormStore) CancelStaffAssignment(ctx context.Context, staffID int64, workDate string, now time.Time) (*model.RoomStaffAssignment, error) {
	var assignment model.RoomStaffAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("station_staff_id = ? AND work_date = ? AND is_active = ?", staffID, workDate, true).
			First(&assignment).Error; err != nil {
			return dbError(err, fmt.Sprintf("no active assignment for staff %d on %s", staffID, workDate))
		}

		if err := tx.Model(&assignment).Updates(map[string]any{
			"is_active":      false,
			"deactivated_at": now,
		}).Error; err != nil {
			return dbError(err, "")
		}

		if err := tx.Model(&model.Staff{}).
			Where("id = ? AND assigned_room_id = ?", staffID, assignment.RoomID).
			Updates(map[string]any{"assigned_room_id": nil, "assigned_at": nil}).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	assignment.IsActive = false
	assignment.DeactivatedAt = &now
	return &assignment, nil
}

// ToggleStaffActive flips is_active on the staff row. Assignments are left as they are.
func (s *gormStore) ToggleStaffActive(ctx context.Context, staffID int64) (*model.Staff, error) {
	var staff model.Staff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&staff, staffID).Error; err != nil {
			return dbError(err, fmt.Sprintf("staff %d not found", staffID))
		}
		staff.IsActive = !staff.IsActive
		if err := tx.Model(&staff).Update("is_active", staff.IsActive).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// AssignDoctor activates a doctor in a room for workDate. Repeating the call
// for an already active pair returns the existing record.
func (s *gormStore) AssignDoctor(ctx context.Context, doctorID, roomID int64, workDate string, now time.Time) (*model.DoctorAssignment, error) {
	var assignment model.DoctorAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor model.Doctor
		if err := tx.Select("id").First(&doctor, doctorID).Error; err != nil {
			return dbError(err, fmt.Sprintf("doctor %d not found", doctorID))
		}
		var room model.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			return dbError(err, fmt.Sprintf("room %d not found", roomID))
		}

		err := tx.Where("doctor_id = ? AND room_id = ? AND work_date = ? AND is_active = ?", doctorID, roomID, workDate, true).
			First(&assignment).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dbError(err, "")
		}

		assignment = model.DoctorAssignment{
			RoomID:     room.ID,
			DoctorID:   doctorID,
			WorkDate:   workDate,
			IsActive:   true,
			AssignedAt: now,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UnassignDoctor deactivates a doctor's active assignment to a room for workDate.
func (s *gormStore) UnassignDoctor(ctx context.Context, doctorID, roomID int64, workDate string) (*model.DoctorAssignment, error) {
	var assignment model.DoctorAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND room_id = ? AND work_date = ? AND is_active = ?", doctorID, roomID, workDate, true).
			First(&assignment).Error; err != nil {
			return dbError(err, fmt.Sprintf("doctor %d is not assigned to room %d on %s", doctorID, roomID, workDate))
		}
		if err := tx.Model(&assignment).Update("is_active", false).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	assignment.IsActive = false
	return &assignment, nil
}

// ListRoomDoctors returns the doctors active in a room on workDate.
func (s *gormStore) ListRoomDoctors(ctx context.Context, roomID int64, workDate string) ([]model.DoctorAssignment, error) {
	assignments := []model.DoctorAssignment{}
	if err := s.db.WithContext(ctx).
		Where("room_id = ? AND work_date = ? AND is_active = ?", roomID, workDate, true).
		Order("assigned_at ASC").Order("id ASC").
		Find(&assignments).Error; err != nil {
		return nil, dbError(err, "")
	}
	return assignments, nil
}

// ImportStaff creates workDate staff rows for roster items whose name is not
// yet present on that station and day. It returns the number of rows created
// and the stations, ascending, that received at least one.
func (s *gormStore) ImportStaff(ctx context.Context, workDate string, items []RosterItem) (ImportResult, error) {
	var result ImportResult
	if len(items) == 0 {
		return result, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.Staff
		if err := tx.Select("station_id", "staff_name").
			Where("work_date = ?", workDate).
			Find(&existing).Error; err != nil {
			return dbError(err, "")
		}
		seen := make(map[string]struct{}, len(existing))
		for _, st := range existing {
			seen[rosterKey(st.StationID, st.StaffName)] = struct{}{}
		}

		var stations []model.Station
		if err := tx.Select("id").Find(&stations).Error; err != nil {
			return dbError(err, "")
		}
		known := make(map[int64]struct{}, len(stations))
		for _, st := range stations {
			known[st.ID] = struct{}{}
		}

		var toCreate []model.Staff
		for _, item := range items {
			name := strings.TrimSpace(item.StaffName)
			if name == "" {
				continue
			}
			if _, ok := known[item.StationID]; !ok {
				s.logger.Warn("roster item references unknown station",
					zap.Int64("station_id", item.StationID), zap.String("staff_name", name))
				continue
			}
			key := rosterKey(item.StationID, name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			toCreate = append(toCreate, model.Staff{
				StationID:      item.StationID,
				StaffName:      name,
				StaffType:      item.StaffType,
				WorkStartTime:  item.WorkStartTime,
				WorkEndTime:    item.WorkEndTime,
				BreakStartTime: item.BreakStartTime,
				BreakEndTime:   item.BreakEndTime,
				WorkDate:       workDate,
				IsActive:       true,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		if err := tx.Create(&toCreate).Error; err != nil {
			return dbError(err, "")
		}

		gained := make(map[int64]struct{})
		for _, st := range toCreate {
			if _, ok := gained[st.StationID]; ok {
				continue
			}
			gained[st.StationID] = struct{}{}
			result.Stations = append(result.Stations, st.StationID)
		}
		slices.Sort(result.Stations)
		result.Created = len(toCreate)
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func rosterKey(stationID int64, name string) string {
	return fmt.Sprintf("%d\x00%s", stationID, name)
}
