// migrate-db applies migrations/NNN_*.sql in order. Applied files are recorded
// with a checksum in schema_migrations; an edited file that was already
// applied stops the run.
//
// Usage: go run ./cmd/migrate-db [--dir migrations]
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"storefront-seeder/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const migrationLockID = 5820193

type migration struct {
	version  string
	filename string
	sql      []byte
	checksum string
}

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "migrations", "directory holding NNN_description.sql files")
	flag.Parse()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("[CONNECT] %v", err)
	}
	defer pool.Close()
	log.Println("[CONNECT] success")

	conn := acquireLock(ctx, pool)
	defer conn.Release()

	setupSchemaMigrations(ctx, pool)

	migrations, err := discoverMigrations(*dir)
	if err != nil {
		log.Fatalf("[DISCOVER] %v", err)
	}
	for _, m := range migrations {
		applyMigration(ctx, pool, m)
	}

	log.Printf("[DONE] %d migrations processed.", len(migrations))
}

func acquireLock(ctx context.Context, pool *pgxpool.Pool) *pgxpool.Conn {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		log.Fatalf("[LOCK] failed to acquire connection for lock: %v", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", migrationLockID).Scan(&locked); err != nil {
		log.Fatalf("[LOCK] failed to query advisory lock: %v", err)
	}
	if !locked {
		log.Fatalf("[LOCK] failed: another migrator is currently running")
	}

	log.Println("[LOCK] success")
	return conn
}

func setupSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	if err != nil {
		log.Fatalf("[ERROR] failed to create schema_migrations table: %v", err)
	}
}

// discoverMigrations reads every .sql file in dir, sorted by name. Versions
// are the filename prefix before the first underscore and must be unique.
func discoverMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []migration
	seen := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, _, ok := strings.Cut(entry.Name(), "_")
		if !ok || version == "" {
			return nil, errors.New("invalid migration filename " + entry.Name() + ", expected NNN_description.sql")
		}
		if prev, dup := seen[version]; dup {
			return nil, errors.New("duplicate version " + version + ": " + prev + " and " + entry.Name())
		}
		seen[version] = entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		hash := sha256.Sum256(data)
		out = append(out, migration{
			version:  version,
			filename: entry.Name(),
			sql:      data,
			checksum: hex.EncodeToString(hash[:]),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].filename < out[j].filename })
	return out, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m migration) {
	var existing string
	err := pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", m.version).Scan(&existing)
	switch {
	case err == nil && existing == m.checksum:
		log.Printf("[SKIP] %s", m.filename)
		return
	case err == nil:
		log.Fatalf("[ERROR] Checksum mismatch for %s. Expected %s, got %s", m.filename, existing, m.checksum)
	case !errors.Is(err, pgx.ErrNoRows):
		log.Fatalf("[ERROR] failed to query schema_migrations for %s: %v", m.filename, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("[ERROR] failed to begin transaction for %s: %v", m.filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(m.sql)); err != nil {
		log.Fatalf("[ERROR] failed to execute migration %s: %v", m.filename, err)
	}
	_, err = tx.Exec(ctx, "INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)",
		m.version, m.filename, m.checksum)
	if err != nil {
		log.Fatalf("[ERROR] failed to insert migration record for %s: %v", m.filename, err)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("[ERROR] failed to commit transaction for %s: %v", m.filename, err)
	}

	log.Printf("[APPLY] %s", m.filename)
}
