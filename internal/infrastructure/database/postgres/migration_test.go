package postgres

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/user"
)

func TestSQLiteConnectionAndMigrations(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}}

	db, err := NewConnection(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}

	m := NewMigration(db.GetDB())
	if err := m.RunAutoMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := m.CreateIndexes(); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	migrator := db.GetDB().Migrator()
	for _, model := range []interface{}{&user.User{}, &cart.Cart{}, &cart.CartItem{}} {
		if !migrator.HasTable(model) {
			t.Fatalf("table for %T missing", model)
		}
	}
	if err := m.GetTableInfo(); err != nil {
		t.Fatalf("table info: %v", err)
	}
}

func TestUnsupportedDriver(t *testing.T) {
	t.Parallel()

	if _, err := NewConnection(&config.Config{Database: config.DatabaseConfig{Driver: "mongo"}}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
