package database

import (
	"log"

	"github.com/tablebook/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Table{},
		&models.Customer{},
		&models.Reservation{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: no two confirmed/seated reservations may hold
	// overlapping windows on the same table. Backstops the application-level
	// restaurant lock.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
		DO $$ BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_table_overlap'
			) THEN
				ALTER TABLE reservations ADD CONSTRAINT reservations_no_table_overlap
				EXCLUDE USING gist (
					table_id WITH =,
					tstzrange(reservation_time, reservation_time + (duration_minutes * interval '1 minute')) WITH &&
				)
				WHERE (status IN ('confirmed', 'seated') AND table_id IS NOT NULL);
			END IF;
		END $$
	`)

	return db
}
