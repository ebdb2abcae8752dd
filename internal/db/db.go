package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shortr/internal/config"
	"shortr/internal/entities"
)

// Open connects to Postgres when a DSN is configured and falls back to
// the SQLite file otherwise.
func Open(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN != "" {
		return OpenPostgres(cfg.DatabaseDSN)
	}
	return OpenSQLite(cfg.SQLitePath)
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return migrate(gdb)
}

func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return migrate(gdb)
}

func migrate(gdb *gorm.DB) (*gorm.DB, error) {
	if err := gdb.AutoMigrate(&entities.ShortURL{}, &entities.IPStat{}); err != nil {
		return nil, err
	}
	return gdb, nil
}
