package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"edulearn/internal/shared/logger"
)

const (
	DefaultGooseScriptsDir   = "internal/infrastructure/migration/scripts/goose"
	DefaultMigrateScriptsDir = "internal/infrastructure/migration/scripts/migrate"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes golang-migrate up/down pairs.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.Named("migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes <timestamp>_<name>.up.sql and .down.sql and returns
// their paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if !migrationNamePattern.MatchString(name) {
		return "", "", fmt.Errorf("migration name must be snake_case: %q", name)
	}

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	created := g.now().UTC()
	prefix := fmt.Sprintf("%s_%s", created.Format("20060102150405"), name)
	upPath := filepath.Join(g.scriptsPath, prefix+".up.sql")
	downPath := filepath.Join(g.scriptsPath, prefix+".down.sql")

	header := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created.Format(time.RFC3339))
	if err := os.WriteFile(upPath, []byte(header), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(header), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write down migration: %w", err)
	}

	g.logger.Infow("migration files created", "up_file", upPath, "down_file", downPath)
	return upPath, downPath, nil
}
