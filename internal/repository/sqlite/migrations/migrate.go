package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"infoco/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations executes all pending migrations.
// A file database is copied to <path>.backup.<timestamp> before the first pending migration
// runs; the copy is removed once every migration has been applied.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := createMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := getDirtyMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var pending []Migration
	for _, migration := range migrations {
		if !applied[migration.Version] {
			pending = append(pending, migration)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	backupPath, err := backupDatabase(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}

	for _, migration := range pending {
		logging.Debugf("applying migration %d (%s)", migration.Version, migration.Name)
		if err := applyMigration(ctx, db, migration); err != nil {
			if backupPath != "" {
				return fmt.Errorf("failed to apply migration %d (%s), backup kept at %s: %w", migration.Version, migration.Name, backupPath, err)
			}
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	if backupPath != "" {
		_ = os.Remove(backupPath)
	}
	return nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var version int
	err = db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM migrations WHERE dirty = FALSE").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read current version: %w", err)
	}
	if version == 0 {
		return nil
	}

	for _, migration := range migrations {
		if migration.Version != version {
			continue
		}
		err := inTx(ctx, db,
			execIn(ctx, migration.Down),
			execIn(ctx, "DELETE FROM migrations WHERE version = ?", version),
		)
		if err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", version, err)
		}
		return nil
	}
	return fmt.Errorf("migration %d is applied but has no source", version)
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    extractName(entry.Name()),
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// queryVersions returns the migration versions selected by query, in query order
func queryVersions(ctx context.Context, db *sql.DB, query string) ([]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	versions, err := queryVersions(ctx, db, "SELECT version FROM migrations WHERE dirty = FALSE")
	if err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func getDirtyMigrations(ctx context.Context, db *sql.DB) ([]int, error) {
	return queryVersions(ctx, db, "SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
}

// inTx runs statements in one transaction, rolling back on the first failure
func inTx(ctx context.Context, db *sql.DB, statements ...func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if err := stmt(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func execIn(ctx context.Context, query string, args ...interface{}) func(*sql.Tx) error {
	return func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
}

// applyMigration marks the version dirty, runs the migration in a transaction and clears the
// mark on commit. A crash in between leaves the dirty row behind for the next start to report.
func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO migrations (version, dirty) VALUES (?, TRUE)", migration.Version); err != nil {
		return err
	}
	return inTx(ctx, db,
		execIn(ctx, migration.Up),
		execIn(ctx, "UPDATE migrations SET dirty = FALSE, applied_at = CURRENT_TIMESTAMP WHERE version = ?", migration.Version),
	)
}

// backupDatabase copies a file database next to itself and returns the copy's path.
// In-memory databases are not backed up.
func backupDatabase(ctx context.Context, db *sql.DB) (string, error) {
	var seq int
	var name, file string
	if err := db.QueryRowContext(ctx, "PRAGMA database_list").Scan(&seq, &name, &file); err != nil {
		return "", err
	}
	if file == "" {
		return "", nil
	}
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		return "", nil
	}

	backupPath := fmt.Sprintf("%s.backup.%d", file, time.Now().UnixNano())
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

func extractName(filename string) string {
	name := strings.TrimSuffix(filename, ".up.sql")
	if idx := strings.Index(name, "_"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
