package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"station-board-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Catalog
	CreateStation(ctx context.Context, station *model.Station) error
	GetStation(ctx context.Context, stationID int64) (*model.Station, error)
	ListStations(ctx context.Context, floor string) ([]model.Station, error)
	CreateRoom(ctx context.Context, in CreateRoomInput) (*model.Room, error)
	GetRoom(ctx context.Context, roomID int64) (*model.Room, error)
	DeleteRoom(ctx context.Context, roomID int64, now time.Time) (*model.Room, error)
	ListRoomLoads(ctx context.Context, stationID int64, workDate string, capacity int) ([]RoomLoad, error)
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	ListProcedures(ctx context.Context, department string) ([]model.Procedure, error)

	// Daily ledger
	AddStaff(ctx context.Context, staff *model.Staff) error
	GetStaff(ctx context.Context, staffID int64) (*model.Staff, error)
	ListStaff(ctx context.Context, stationID int64, workDate string) ([]model.Staff, error)
	AssignStaff(ctx context.Context, in AssignInput) (*model.RoomStaffAssignment, error)
	CancelStaffAssignment(ctx context.Context, staffID int64, workDate string, now time.Time) (*model.RoomStaffAssignment, error)
	ToggleStaffActive(ctx context.Context, staffID int64) (*model.Staff, error)
	AssignDoctor(ctx context.Context, doctorID, roomID int64, workDate string, now time.Time) (*model.DoctorAssignment, error)
	UnassignDoctor(ctx context.Context, doctorID, roomID int64, workDate string) (*model.DoctorAssignment, error)
	ListRoomDoctors(ctx context.Context, roomID int64, workDate string) ([]model.DoctorAssignment, error)
	ImportStaff(ctx context.Context, workDate string, items []RosterItem) (ImportResult, error)

	// Ordering
	GetStationOrder(ctx context.Context, floor string) ([]StationOrder, error)
	SaveStationOrder(ctx context.Context, floor string, entries []OrderEntry) (SaveOrderResult, error)
	ResetStationOrder(ctx context.Context, floor string) (int64, error)

	// Day boundary
	PurgeBefore(ctx context.Context, today string) (ResetCounts, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gormStore{db: db, logger: logger}
}

// DB exposes the underlying handle for handlers that own simple tables (push subscriptions).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
