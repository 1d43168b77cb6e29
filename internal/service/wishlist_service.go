package service

import (
	"errors"
	"time"

	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 获取用户心愿单
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Add 添加商品到心愿单
// 商品必须存在；重复收藏由唯一索引拦截，并发下不会产生重复行。
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWishlistDuplicate
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

// Remove 从心愿单移除商品
func (s *WishlistService) Remove(userID, productID uint) error {
	affected, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
