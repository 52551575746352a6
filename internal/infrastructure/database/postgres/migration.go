// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&cart.Cart{},
		&cart.CartItem{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	for _, model := range Models() {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_last_login ON users(last_login DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_carts_last_updated ON carts(last_updated DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart_added ON cart_items(cart_id, added_at)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_code ON cart_items(code)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	if failCount > 0 {
		return fmt.Errorf("%d indexes failed", failCount)
	}
	return nil
}

// GetTableInfo logs the record count of every migrated table
func (m *Migration) GetTableInfo() error {
	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	tables := 0
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: m.db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		totalRecords += count
		tables++

		status := "✅"
		if count == 0 {
			status = "📭"
		}
		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", tables)

	return nil
}
