// internal/infrastructure/persistence/postgres/migrator.go
package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"entry-zone-bot/pkg/logger"

	"github.com/jmoiron/sqlx"
)

const downMarker = "-- DOWN Migration"

// Migrator управляет миграциями базы данных
type Migrator struct {
	db         *sqlx.DB
	migrations map[int]*Migration
}

// Migration представляет одну миграцию
type Migration struct {
	ID          int
	Name        string
	Description string
	SQL         string // только UP часть
	Checksum    string
}

// MigrationRecord строка таблицы migrations
type MigrationRecord struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	AppliedAt time.Time `db:"applied_at"`
	Checksum  string    `db:"checksum"`
}

// NewMigrator создает новый мигратор
func NewMigrator(db *sqlx.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: make(map[int]*Migration),
	}
}

// Init создает таблицу миграций
func (m *Migrator) Init(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		checksum VARCHAR(64) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// LoadMigrations читает файлы NNN_name.sql из dir в fsys
func (m *Migrator) LoadMigrations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, filename := range files {
		content, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}
		if err := m.add(filename, string(content)); err != nil {
			return err
		}
	}

	logger.Debug("📂 Loaded %d migrations", len(m.migrations))
	return nil
}

func (m *Migrator) add(filename, content string) error {
	id, name, err := parseMigrationFilename(filename)
	if err != nil {
		return err
	}
	if _, dup := m.migrations[id]; dup {
		return fmt.Errorf("duplicate migration ID %d: %s", id, filename)
	}

	up := upSQL(content)
	m.migrations[id] = &Migration{
		ID:          id,
		Name:        name,
		Description: extractDescription(content),
		SQL:         up,
		Checksum:    calculateChecksum(up),
	}
	return nil
}

// Migrate применяет все непройденные миграции по возрастанию ID
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.Init(ctx); err != nil {
		return err
	}

	applied, err := m.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	var appliedCount int
	for _, id := range m.sortedIDs() {
		migration := m.migrations[id]

		if record, ok := applied[id]; ok {
			if record.Checksum != migration.Checksum {
				return fmt.Errorf("checksum mismatch for migration %d: %s", id, migration.Name)
			}
			continue
		}

		if err := m.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %s: %w", id, migration.Name, err)
		}
		appliedCount++
	}

	if appliedCount > 0 {
		logger.Info("✅ Applied %d new migrations", appliedCount)
	} else {
		logger.Info("✅ Database is up to date")
	}
	return nil
}

func (m *Migrator) sortedIDs() []int {
	ids := make([]int, 0, len(m.migrations))
	for id := range m.migrations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *Migrator) appliedMigrations(ctx context.Context) (map[int]MigrationRecord, error) {
	var records []MigrationRecord
	err := m.db.SelectContext(ctx, &records, `SELECT id, name, applied_at, checksum FROM migrations ORDER BY id`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	applied := make(map[int]MigrationRecord, len(records))
	for _, r := range records {
		applied[r.ID] = r
	}
	return applied, nil
}

func (m *Migrator) applyMigration(ctx context.Context, migration *Migration) error {
	logger.Info("📤 Applying migration: %s", migration.Name)

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO migrations (id, name, description, checksum) VALUES ($1, $2, $3, $4)`,
		migration.ID, migration.Name, migration.Description, migration.Checksum,
	)
	if err != nil {
		return fmt.Errorf("failed to save migration record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// Вспомогательные функции

// parseMigrationFilename: "001_create_scan_cycles.sql" -> 1, "create scan cycles"
func parseMigrationFilename(filename string) (int, string, error) {
	base := strings.TrimSuffix(filename, ".sql")

	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected: 001_name.sql)", filename)
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid migration ID in filename: %s", filename)
	}

	return id, strings.ReplaceAll(parts[1], "_", " "), nil
}

func extractDescription(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-- Description:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "-- Description:"))
		}
	}
	return "No description"
}

// upSQL отрезает секцию отката
func upSQL(content string) string {
	if i := strings.Index(content, downMarker); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}

func calculateChecksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
