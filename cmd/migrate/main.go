// Command migrate applies the delivery-log schema to DATABASE_URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  reset       drop the delivery log and recreate it from the consolidated schema
  fresh       drop the delivery log and replay every migration in order`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()
	logger := logging.Setup("migrate", os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is not set; the delivery log is optional and has nothing to migrate")
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := &migrator{pool: pool, dir: findMigrationDir(), logger: logger}
	switch cmd {
	case "":
		err = m.incremental(ctx)
	case "reset":
		if err = m.exec(ctx, dropAllFile); err == nil {
			err = m.consolidated(ctx)
		}
	case "fresh":
		if err = m.exec(ctx, dropAllFile); err == nil {
			err = m.incremental(ctx)
		}
	default:
		usage()
	}
	if err != nil {
		pool.Close()
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles returns the *.up.sql names in dir in apply order.
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

type migrator struct {
	pool   *pgxpool.Pool
	dir    string
	logger *slog.Logger
}

func (m *migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (m *migrator) exec(ctx context.Context, filename string) error {
	sql, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}
	m.logger.Info("sql applied", "file", filename)
	return nil
}

func (m *migrator) incremental(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(m.dir)
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")

		var exists bool
		if err := m.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := m.exec(ctx, filename); err != nil {
			return err
		}
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		applied++
	}

	m.logger.Info("migrations completed", "applied", applied, "known", len(upFiles))
	return nil
}

// consolidated creates the schema in one step and marks every migration applied.
func (m *migrator) consolidated(ctx context.Context) error {
	if err := m.exec(ctx, consolidatedFile); err != nil {
		return err
	}
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(m.dir)
	if err != nil {
		return err
	}
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("mark %s: %w", name, err)
		}
	}
	m.logger.Info("consolidated schema applied", "migrations_marked", len(upFiles))
	return nil
}
