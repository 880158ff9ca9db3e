package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"station-board-backend/internal/model"
)

// CreateStation inserts a new station with an empty room count.
func (s *gormStore) CreateStation(ctx context.Context, station *model.Station) error {
	if strings.TrimSpace(station.Name) == "" || strings.TrimSpace(station.Floor) == "" {
		return InvalidInput("station name and floor are required")
	}
	station.RoomCount = 0
	if err := s.db.WithContext(ctx).Create(station).Error; err != nil {
		return dbError(err, "")
	}
	return nil
}

// GetStation loads a station by ID.
func (s *gormStore) GetStation(ctx context.Context, stationID int64) (*model.Station, error) {
	var station model.Station
	if err := s.db.WithContext(ctx).First(&station, stationID).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("station %d not found", stationID))
	}
	return &station, nil
}

// ListStations returns the stations of a floor in display order.
func (s *gormStore) ListStations(ctx context.Context, floor string) ([]model.Station, error) {
	var stations []model.Station
	if err := orderedStations(s.db.WithContext(ctx), floor).Find(&stations).Error; err != nil {
		return nil, dbError(err, "")
	}
	return stations, nil
}

// CreateRoom adds a room under a locked station row so concurrent creations
// cannot read the same room_count. Without a room number the room is labelled
// from room_count, skipping labels that already exist; room_count advances to
// the label actually used.
func (s *gormStore) CreateRoom(ctx context.Context, in CreateRoomInput) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var station model.Station
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&station, in.StationID).Error; err != nil {
			return dbError(err, fmt.Sprintf("station %d not found", in.StationID))
		}

		next := station.RoomCount + 1
		number := strings.TrimSpace(in.RoomNumber)
		generated := number == ""

		// Generated numbers skip labels already taken by hand-numbered rooms.
		for {
			if generated {
				number = model.DefaultRoomNumber(next)
			}
			var taken int64
			if err := tx.Model(&model.Room{}).
				Where("station_id = ? AND room_number = ?", station.ID, number).
				Count(&taken).Error; err != nil {
				return dbError(err, "")
			}
			if taken == 0 {
				break
			}
			if !generated {
				return InvalidInput("room number %q already exists in station %d", number, station.ID)
			}
			next++
		}

		room = model.Room{
			StationID:   station.ID,
			RoomNumber:  number,
			RoomName:    strings.TrimSpace(in.RoomName),
			MaxPatients: in.MaxPatients,
		}
		if err := tx.Create(&room).Error; err != nil {
			return dbError(err, "")
		}

		if err := tx.Model(&station).Update("room_count", next).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom loads a room by ID.
func (s *gormStore) GetRoom(ctx context.Context, roomID int64) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("room %d not found", roomID))
	}
	return &room, nil
}

// DeleteRoom removes a room and releases everything bound to it. Siblings keep
// their numbers and the station's room_count is left untouched.
func (s *gormStore) DeleteRoom(ctx context.Context, roomID int64, now time.Time) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			return dbError(err, fmt.Sprintf("room %d not found", roomID))
		}

		if err := tx.Model(&model.RoomStaffAssignment{}).
			Where("room_id = ? AND is_active = ?", room.ID, true).
			Updates(map[string]any{"is_active": false, "deactivated_at": now}).Error; err != nil {
			return dbError(err, "")
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&model.DoctorAssignment{}).Error; err != nil {
			return dbError(err, "")
		}
		if err := tx.Model(&model.Staff{}).
			Where("assigned_room_id = ?", room.ID).
			Updates(map[string]any{"assigned_room_id": nil, "assigned_at": nil}).Error; err != nil {
			return dbError(err, "")
		}
		if err := tx.Delete(&room).Error; err != nil {
			return dbError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomLoads returns a station's rooms with the number of staff actively
// assigned to each on workDate. An unknown station yields an empty list.
func (s *gormStore) ListRoomLoads(ctx context.Context, stationID int64, workDate string, capacity int) ([]RoomLoad, error) {
	db := s.db.WithContext(ctx)

	var rooms []model.Room
	if err := db.Where("station_id = ?", stationID).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, dbError(err, "")
	}
	loads := make([]RoomLoad, 0, len(rooms))
	if len(rooms) == 0 {
		return loads, nil
	}

	roomIDs := make([]int64, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}

	type countRow struct {
		RoomID int64
		Cnt    int64
	}
	var counts []countRow
	if err := db.Model(&model.RoomStaffAssignment{}).
		Select("room_id, COUNT(*) AS cnt").
		Where("room_id IN ? AND work_date = ? AND is_active = ?", roomIDs, workDate, true).
		Group("room_id").
		Scan(&counts).Error; err != nil {
		return nil, dbError(err, "")
	}

	countMap := make(map[int64]int64, len(counts))
	for _, c := range counts {
		countMap[c.RoomID] = c.Cnt
	}

	for _, r := range rooms {
		n := countMap[r.ID]
		loads = append(loads, RoomLoad{
			Room:              r,
			CurrentStaffCount: n,
			Capacity:          capacity,
			IsAvailable:       n < int64(capacity),
		})
	}
	return loads, nil
}

// CreateDoctor inserts a doctor into the catalog.
func (s *gormStore) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if strings.TrimSpace(doctor.Name) == "" {
		return InvalidInput("doctor name is required")
	}
	if err := s.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return dbError(err, "")
	}
	return nil
}

// ListProcedures returns catalog procedures, optionally narrowed to one department.
func (s *gormStore) ListProcedures(ctx context.Context, department string) ([]model.Procedure, error) {
	q := s.db.WithContext(ctx).Order("code ASC")
	if department != "" {
		q = q.Where("department = ?", department)
	}
	procedures := []model.Procedure{}
	if err := q.Find(&procedures).Error; err != nil {
		return nil, dbError(err, "")
	}
	return procedures, nil
}
