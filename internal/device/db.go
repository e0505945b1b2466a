package device

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewDBConnection opens the sqlite database at dbFile with WAL and a
// generous busy timeout, then migrates the schema. Concurrent readers
// are expected; writers serialize on the busy timeout.
func NewDBConnection(dbFile string) (*gorm.DB, error) {
	dsn := dbFile + "?_journal_mode=WAL&_busy_timeout=30000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&Device{},
		&ScanEvent{},
		&ScanSession{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
