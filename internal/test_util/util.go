package test_util

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func GetDBConnection(dbFile string) (*gorm.DB, error) {
	dsn := dbFile + "?_journal_mode=WAL&_busy_timeout=30000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	return db, err
}

func Migrate(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}
