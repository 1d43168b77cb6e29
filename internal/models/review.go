package models

import "time"

// Review 商品评价
// 每个用户对同一商品仅允许一条评价，由 (user_id, product_id) 唯一索引保证；
// 物理删除，删除后允许重新评价。
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                           // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`    // 评价人ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"` // 商品ID
	Rating    int       `gorm:"not null" json:"rating"`                                         // 评分（1-5）
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`                        // 标题
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`                      // 内容
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                        // 更新时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 评价人
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
