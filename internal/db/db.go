package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"station-board-backend/config"
	"station-board-backend/internal/model"
)

// Init opens the process-wide database handle and runs migrations.
func Init(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Info("running database migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := applyPostgresDDL(db); err != nil {
		log.Warn("failed to apply postgres-specific DDL, continuing without it", zap.Error(err))
	}

	log.Info("database initialization complete")
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Station{},
		&model.Room{},
		&model.Doctor{},
		&model.Procedure{},
		&model.Staff{},
		&model.RoomStaffAssignment{},
		&model.DoctorAssignment{},
		&model.PatientQueueEntry{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyPostgresDDL adds the partial unique indexes gorm tags cannot express.
func applyPostgresDDL(db *gorm.DB) error {
	ddls := []string{
		// One active room per staff row and day.
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_rsa_active_staff_day " +
			"ON room_staff_assignments (station_staff_id, work_date) WHERE is_active;",
		// A doctor is active once per room and day.
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_rda_active_doctor_room_day " +
			"ON room_doctor_assignments (doctor_id, room_id, work_date) WHERE is_active;",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
