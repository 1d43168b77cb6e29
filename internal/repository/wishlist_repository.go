package repository

import (
	"github.com/market-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	Create(item *models.WishlistItem) error
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
	DeleteByProduct(productID uint) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// ListByUser 获取用户心愿单
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建心愿单项
// 重复收藏由唯一索引拦截，冲突以 gorm.ErrDuplicatedKey 返回。
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// DeleteByUserAndProduct 删除心愿单项，返回删除行数
func (r *GormWishlistRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}

// DeleteByProduct 删除引用指定商品的所有心愿单项
func (r *GormWishlistRepository) DeleteByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error
}
