package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures выполняет SQL фикстуры из testdata по порядку
func LoadFixtures(ctx context.Context, db *sqlx.DB, dir string, files ...string) error {
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// ServiceIDByName - id сервиса из фикстуры по имени
func ServiceIDByName(ctx context.Context, db *sqlx.DB, name string) (int64, error) {
	var id int64
	if err := db.GetContext(ctx, &id, "SELECT id FROM services WHERE name = $1", name); err != nil {
		return 0, fmt.Errorf("get service ID by name %q: %w", name, err)
	}
	return id, nil
}
