package storage

import (
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericogr/dungeon-party/internal/logging"
)

// OpenAndMigrate opens the SQLite database and keeps the schema current.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && dataSourceName != ":memory:" {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&GameRecord{}, &Grant{}); err != nil {
		return nil, err
	}
	logging.Debug("database ready", logging.Fields{"dsn": dataSourceName})
	return db, nil
}
