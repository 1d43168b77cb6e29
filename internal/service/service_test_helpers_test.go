package service

import (
	"fmt"
	"testing"

	"github.com/market-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newTestDB 每个测试用独立命名的内存库，互不串数据。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func mustCreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		DisplayName:  username,
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s failed: %v", username, err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, sellerID uint, title string, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: "test product",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", title, err)
	}
	return product
}
