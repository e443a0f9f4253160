package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/estatecore/backend/internal/db"
	"github.com/estatecore/backend/internal/pkg/logger"
)

// Migrator applies the SQL files under the migrations directory exactly
// once, tracked in the schema_migrations table.
type Migrator struct {
	db *db.PostgresDB
}

// NewMigrator creates a new Migrator
func NewMigrator(database *db.PostgresDB) *Migrator {
	return &Migrator{db: database}
}

func (m *Migrator) ensureMigrationTable(ctx context.Context) error {
	_, err := m.db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// ApplyFile executes one migration file inside a transaction and records
// its version. Already-applied versions are skipped.
func (m *Migrator) ApplyFile(ctx context.Context, filePath string) error {
	if err := m.ensureMigrationTable(ctx); err != nil {
		return err
	}

	// "001_init.sql" => version "001"
	filename := filepath.Base(filePath)
	version := strings.Split(filename, "_")[0]

	applied, err := m.isApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", filename, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Str("migration", filename).Msg("Migration applied")
	return nil
}

// ApplyDirectory executes every .sql file in the directory in name order
func (m *Migrator) ApplyDirectory(ctx context.Context, dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, file := range sqlFiles {
		if err := m.ApplyFile(ctx, filepath.Join(dirPath, file)); err != nil {
			return err
		}
	}

	return nil
}
