package repository

import (
	"fmt"
	"testing"

	"github.com/market-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createListProduct(t *testing.T, repo *GormProductRepository, sellerID uint, title, description, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", title, err)
	}
	return product
}

func TestProductListSearchMatchesTitleAndDescription(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createListProduct(t, repo, 1, "Desk Lamp", "warm light", "12.00")
	createListProduct(t, repo, 1, "Keyboard", "with lamp-style backlight", "80.00")
	createListProduct(t, repo, 1, "Mouse", "wireless", "20.00")

	products, total, err := repo.List(ProductListFilter{Page: 1, PerPage: 10, Search: "lamp", SortBy: "id", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("search want 2 rows got total=%d rows=%d", total, len(products))
	}
}

func TestProductListOrderAndPagination(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createListProduct(t, repo, 1, "A", "d", "30.00")
	createListProduct(t, repo, 1, "B", "d", "10.00")
	createListProduct(t, repo, 1, "C", "d", "20.00")

	products, total, err := repo.List(ProductListFilter{Page: 1, PerPage: 2, SortBy: "price", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(products) != 2 || products[0].Title != "A" || products[1].Title != "C" {
		t.Fatalf("price desc page 1 want [A C] got %+v", products)
	}

	products, _, err = repo.List(ProductListFilter{Page: 2, PerPage: 2, SortBy: "price", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(products) != 1 || products[0].Title != "B" {
		t.Fatalf("price desc page 2 want [B] got %+v", products)
	}
}

func TestProductOrderFallsBackToWhitelistedField(t *testing.T) {
	got := buildProductOrder("password_hash", "desc")
	if got != "id DESC" {
		t.Fatalf("non-whitelisted field should fall back to id, got %q", got)
	}
	got = buildProductOrder("price", "asc")
	if got != "price ASC" {
		t.Fatalf("order clause want price ASC got %q", got)
	}
}

func TestProductGetByIDMissingReturnsNil(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing product should not error, got %v", err)
	}
	if product != nil {
		t.Fatalf("missing product should be nil, got %+v", product)
	}
}
