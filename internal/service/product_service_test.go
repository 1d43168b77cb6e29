package service

import (
	"errors"
	"testing"

	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductTestService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	return NewProductService(productRepo, cartRepo, wishlistRepo, reviewRepo), db
}

func TestProductCreateValidation(t *testing.T) {
	svc, db := newProductTestService(t)
	seller := mustCreateTestUser(t, db, "product_seller")
	price := models.NewMoneyFromDecimal(decimal.RequireFromString("12.00"))

	cases := []struct {
		name  string
		input CreateProductInput
		want  error
	}{
		{
			name:  "empty title",
			input: CreateProductInput{Title: "   ", Description: "d", Price: price},
			want:  ErrProductTitleInvalid,
		},
		{
			name:  "empty description",
			input: CreateProductInput{Title: "Lamp", Description: " ", Price: price},
			want:  ErrProductDescriptionRequired,
		},
		{
			name: "negative price",
			input: CreateProductInput{
				Title:       "Lamp",
				Description: "d",
				Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("-1")),
			},
			want: ErrProductPriceInvalid,
		},
	}
	for _, tc := range cases {
		if _, err := svc.Create(seller.ID, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}

	product, err := svc.Create(seller.ID, CreateProductInput{
		Title:       "  Desk Lamp  ",
		Description: " warm light ",
		Price:       price,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Title != "Desk Lamp" || product.Description != "warm light" {
		t.Fatalf("fields not trimmed: %q / %q", product.Title, product.Description)
	}
	if product.SellerID != seller.ID {
		t.Fatalf("seller want %d got %d", seller.ID, product.SellerID)
	}
}

func TestProductUpdateOwnership(t *testing.T) {
	svc, db := newProductTestService(t)
	owner := mustCreateTestUser(t, db, "product_owner")
	other := mustCreateTestUser(t, db, "product_other")
	product := mustCreateTestProduct(t, db, owner.ID, "Desk Lamp", "12.00")

	newTitle := "Better Lamp"

	// 不存在优先于无权限
	if _, err := svc.Update(other.ID, 9999, UpdateProductInput{Title: &newTitle}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
	if _, err := svc.Update(other.ID, product.ID, UpdateProductInput{Title: &newTitle}); !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("foreign update want ErrNotProductOwner got %v", err)
	}

	updated, err := svc.Update(owner.ID, product.ID, UpdateProductInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Better Lamp" {
		t.Fatalf("title want Better Lamp got %q", updated.Title)
	}
	if updated.Description != "test product" {
		t.Fatalf("untouched field changed: %q", updated.Description)
	}
}

func TestProductDeleteCascades(t *testing.T) {
	svc, db := newProductTestService(t)
	owner := mustCreateTestUser(t, db, "product_owner")
	buyer := mustCreateTestUser(t, db, "product_buyer")
	product := mustCreateTestProduct(t, db, owner.ID, "Desk Lamp", "12.00")

	cartSvc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	if _, err := cartSvc.AddItem(buyer.ID, product.ID, 2); err != nil {
		t.Fatalf("add cart failed: %v", err)
	}
	wishlistSvc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	if _, err := wishlistSvc.Add(buyer.ID, product.ID); err != nil {
		t.Fatalf("add wishlist failed: %v", err)
	}
	reviewSvc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	if _, err := reviewSvc.Create(buyer.ID, product.ID, ReviewInput{Rating: 5, Title: "Good", Content: "Works well."}); err != nil {
		t.Fatalf("add review failed: %v", err)
	}

	if err := svc.Delete(buyer.ID, product.ID); !errors.Is(err, ErrNotProductOwner) {
		t.Fatalf("foreign delete want ErrNotProductOwner got %v", err)
	}
	if err := svc.Delete(owner.ID, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.Get(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("product should be gone, got %v", err)
	}
	for table, model := range map[string]interface{}{
		"cart_items":     &models.CartItem{},
		"wishlist_items": &models.WishlistItem{},
		"reviews":        &models.Review{},
	} {
		var count int64
		if err := db.Model(model).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("%s rows should be cascaded, got %d", table, count)
		}
	}
}

func TestProductListSanitizesFilter(t *testing.T) {
	svc, db := newProductTestService(t)
	seller := mustCreateTestUser(t, db, "product_seller")
	mustCreateTestProduct(t, db, seller.ID, "Desk Lamp", "12.00")
	mustCreateTestProduct(t, db, seller.ID, "Floor Lamp", "30.00")
	mustCreateTestProduct(t, db, seller.ID, "Keyboard", "80.00")

	result, err := svc.List(repository.ProductListFilter{
		Page:      -3,
		PerPage:   1000,
		SortBy:    "password_hash", // 非白名单字段回退到 id
		SortOrder: "DESC",
		Search:    " lamp ",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page want 1 got %d", result.Page)
	}
	if result.Total != 2 {
		t.Fatalf("search total want 2 got %d", result.Total)
	}
	if len(result.Products) != 2 {
		t.Fatalf("rows want 2 got %d", len(result.Products))
	}
	if result.Products[0].ID < result.Products[1].ID {
		t.Fatalf("desc order not applied: %d before %d", result.Products[0].ID, result.Products[1].ID)
	}
}

func TestProductListPagination(t *testing.T) {
	svc, db := newProductTestService(t)
	seller := mustCreateTestUser(t, db, "product_seller")
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		mustCreateTestProduct(t, db, seller.ID, title, "10.00")
	}

	result, err := svc.List(repository.ProductListFilter{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 5 || result.TotalPages != 3 {
		t.Fatalf("total/pages want 5/3 got %d/%d", result.Total, result.TotalPages)
	}
	if len(result.Products) != 2 {
		t.Fatalf("page rows want 2 got %d", len(result.Products))
	}
}
