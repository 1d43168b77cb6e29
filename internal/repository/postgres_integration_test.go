//go:build integration
// +build integration

package repository

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/market-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Review{},
		&models.WishlistItem{},
		&models.CartItem{},
		&models.Product{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createIntegrationUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		DisplayName:  username,
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestPostgresProductListSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	seller := createIntegrationUser(t, db, "pg_seller")

	for _, row := range []struct{ title, description, price string }{
		{"Desk Lamp", "warm light", "12.00"},
		{"Keyboard", "lamp-style backlight", "80.00"},
		{"Mouse", "wireless", "20.00"},
	} {
		product := &models.Product{
			SellerID:    seller.ID,
			Title:       row.title,
			Description: row.description,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(row.price)),
		}
		if err := repo.Create(product); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	_, total, err := repo.List(ProductListFilter{Page: 1, PerPage: 10, Search: "lamp", SortBy: "id", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("search total want 2 got %d", total)
	}
}

func TestPostgresWishlistUniqueIndex(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	wishlistRepo := NewWishlistRepository(db)
	user := createIntegrationUser(t, db, "pg_user")
	seller := createIntegrationUser(t, db, "pg_seller")

	product := &models.Product{
		SellerID:    seller.ID,
		Title:       "Keyboard",
		Description: "d",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("80.00")),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := wishlistRepo.Create(&models.WishlistItem{UserID: user.ID, ProductID: product.ID}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := wishlistRepo.Create(&models.WishlistItem{UserID: user.ID, ProductID: product.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate create want gorm.ErrDuplicatedKey got %v", err)
	}
}
