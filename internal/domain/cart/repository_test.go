package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Cart{}, &CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.FindByUserID(ctx, 42); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cart := &Cart{UserID: 42, Items: []CartItem{
		{Code: "COLLAGE-004", Size: "M", Quantity: 2, Price: 200, Total: 400, AddedAt: base},
	}}
	if err := repo.Create(ctx, cart); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cart.ID == 0 || cart.Items[0].ID == "" {
		t.Fatalf("ids not assigned: %+v", cart)
	}
	if cart.TotalItems != 1 || cart.TotalAmount != 400 {
		t.Fatalf("hook did not compute totals: %+v", cart)
	}

	cart.Items = append(cart.Items, CartItem{Code: "SPACE-1", Size: "S", Quantity: 1, Price: 100, Total: 100, AddedAt: base.Add(time.Minute)})
	if err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.FindByUserID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(loaded.Items) != 2 || loaded.Items[0].Code != "COLLAGE-004" || loaded.Items[1].Code != "SPACE-1" {
		t.Fatalf("unexpected items: %+v", loaded.Items)
	}
	if loaded.TotalItems != 2 || loaded.TotalAmount != 500 {
		t.Fatalf("unexpected totals: %d %d", loaded.TotalItems, loaded.TotalAmount)
	}

	loaded.Items = []CartItem{}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, err := repo.FindByUserID(ctx, 42)
	if err != nil {
		t.Fatalf("find after clear: %v", err)
	}
	if len(cleared.Items) != 0 || cleared.TotalAmount != 0 {
		t.Fatalf("items not removed: %+v", cleared)
	}
}

func TestGormRepositoryOneCartPerUser(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &Cart{UserID: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &Cart{UserID: 1}); err == nil {
		t.Fatal("second cart for the same user should violate the unique index")
	}
}
