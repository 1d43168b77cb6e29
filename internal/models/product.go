package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                              // 主键
	SellerID      uint           `gorm:"not null;index" json:"seller_id"`                   // 卖家用户ID
	Title         string         `gorm:"type:varchar(100);not null;index" json:"title"`     // 标题
	Description   string         `gorm:"type:text;not null" json:"description"`             // 描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	CoverImageURL string         `gorm:"default:''" json:"cover_image_url"`                 // 封面图
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	// 关联
	Seller *User `gorm:"foreignKey:SellerID" json:"seller,omitempty"` // 卖家信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
