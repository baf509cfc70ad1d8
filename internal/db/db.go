package db

import (
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notes/internal/auth"
	"notes/internal/note"
)

// Connect opens dsn with pgx, or with lib/pq when driver is "postgres".
func Connect(dsn, driver string) (*gorm.DB, error) {
	pgCfg := postgres.Config{DSN: dsn}
	if driver == "postgres" {
		pgCfg.DriverName = "postgres"
	}

	gdb, err := gorm.Open(postgres.New(pgCfg), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&note.Note{},
	); err != nil {
		return err
	}

	stmts := []string{
		// substring search with ILIKE '%...%'
		`create extension if not exists pg_trgm;`,
		`create index if not exists idx_notes_title_trgm on notes using gin (title gin_trgm_ops);`,
		`create index if not exists idx_notes_content_trgm on notes using gin (content gin_trgm_ops);`,
		`create index if not exists idx_notes_owner_updated on notes(owner_id, updated_at desc, id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
