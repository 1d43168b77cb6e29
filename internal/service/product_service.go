package service

import (
	"strings"
	"time"

	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	reviewRepo   repository.ReviewRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, cartRepo repository.CartRepository, wishlistRepo repository.WishlistRepository, reviewRepo repository.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		reviewRepo:   reviewRepo,
	}
}

// ProductListResult 商品列表结果
type ProductListResult struct {
	Products   []models.Product
	Total      int64
	Page       int
	PerPage    int
	TotalPages int64
}

// List 公开商品列表
// 分页与排序参数在此统一收敛：page>=1、per_page<=100、排序字段白名单。
func (s *ProductService) List(filter repository.ProductListFilter) (*ProductListResult, error) {
	filter = sanitizeProductFilter(filter)
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	totalPages := total / int64(filter.PerPage)
	if total%int64(filter.PerPage) != 0 {
		totalPages++
	}
	return &ProductListResult{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: totalPages,
	}, nil
}

func sanitizeProductFilter(filter repository.ProductListFilter) repository.ProductListFilter {
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PerPage <= 0 {
		filter.PerPage = constants.DefaultPerPage
	}
	if filter.PerPage > constants.MaxPerPage {
		filter.PerPage = constants.MaxPerPage
	}
	filter.Search = strings.TrimSpace(filter.Search)

	sortBy := strings.ToLower(strings.TrimSpace(filter.SortBy))
	valid := false
	for _, allowed := range constants.ProductSortFields {
		if sortBy == allowed {
			valid = true
			break
		}
	}
	if !valid {
		sortBy = constants.ProductSortByID
	}
	filter.SortBy = sortBy

	if strings.ToLower(strings.TrimSpace(filter.SortOrder)) == constants.SortOrderDesc {
		filter.SortOrder = constants.SortOrderDesc
	} else {
		filter.SortOrder = constants.SortOrderAsc
	}
	return filter
}

// Get 获取商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListBySeller 卖家名下商品
func (s *ProductService) ListBySeller(sellerID uint) ([]models.Product, error) {
	return s.productRepo.ListBySeller(sellerID)
}

// CreateProductInput 创建商品入参
type CreateProductInput struct {
	Title         string
	Description   string
	Price         models.Money
	CoverImageURL string
}

// Create 创建商品
// 卖家永远取当前登录用户，请求中的 seller_id 一律忽略。
func (s *ProductService) Create(sellerID uint, input CreateProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateProductTitle(title); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrProductDescriptionRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrProductPriceInvalid
	}

	now := time.Now()
	product := &models.Product{
		SellerID:      sellerID,
		Title:         title,
		Description:   description,
		Price:         input.Price,
		CoverImageURL: strings.TrimSpace(input.CoverImageURL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput 更新商品入参（nil 字段保持不变）
type UpdateProductInput struct {
	Title         *string
	Description   *string
	Price         *models.Money
	CoverImageURL *string
}

// Update 更新商品
// 先按存在性返回未找到，再按归属返回无权限。
func (s *ProductService) Update(userID, productID uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.SellerID != userID {
		return nil, ErrNotProductOwner
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateProductTitle(title); err != nil {
			return nil, err
		}
		product.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, ErrProductDescriptionRequired
		}
		product.Description = description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrProductPriceInvalid
		}
		product.Price = *input.Price
	}
	if input.CoverImageURL != nil {
		product.CoverImageURL = strings.TrimSpace(*input.CoverImageURL)
	}

	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
// 同一事务内级联清理引用该商品的购物车、心愿单与评价行，失败整体回滚。
func (s *ProductService) Delete(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.SellerID != userID {
		return ErrNotProductOwner
	}

	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).DeleteByProduct(productID); err != nil {
			return err
		}
		if err := s.wishlistRepo.WithTx(tx).DeleteByProduct(productID); err != nil {
			return err
		}
		if err := s.reviewRepo.WithTx(tx).DeleteByProduct(productID); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(productID)
	})
}

func validateProductTitle(title string) error {
	if title == "" || len([]rune(title)) > constants.ProductTitleMaxLen {
		return ErrProductTitleInvalid
	}
	return nil
}
