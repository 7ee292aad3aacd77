package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/angelmondragon/storefront-core/pkg/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the embedded goose migration files rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(fmt.Sprintf("embedded migrations: %v", err))
	}
	return sub
}

func dialectFor(driver string) (goose.Dialect, error) {
	switch driver {
	case config.DBDriverPostgres, "":
		return goose.DialectPostgres, nil
	case config.DBDriverSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no goose dialect for driver %q", driver)
	}
}

// NewProvider builds a goose provider over the embedded migrations.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Run executes a goose command (up, down, status) against db and returns a summary per migration.
func Run(ctx context.Context, db *sql.DB, driver, command string) ([]string, error) {
	provider, err := NewProvider(db, driver)
	if err != nil {
		return nil, err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose up: %w", err)
		}
		lines := make([]string, 0, len(results))
		for _, res := range results {
			lines = append(lines, fmt.Sprintf("applied %d (%s)", res.Source.Version, res.Duration))
		}
		return lines, nil

	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose down: %w", err)
		}
		return []string{fmt.Sprintf("rolled back %d", res.Source.Version)}, nil

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose status: %w", err)
		}
		lines := make([]string, 0, len(statuses))
		for _, st := range statuses {
			lines = append(lines, fmt.Sprintf("%d %s", st.Source.Version, st.State))
		}
		return lines, nil

	default:
		return nil, fmt.Errorf("unknown migrate command %q", command)
	}
}
