package service

import (
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

// CartLine 购物车行（含商品快照与小计）
type CartLine struct {
	ID       uint            `json:"id"`
	Quantity int             `json:"quantity"`
	Subtotal models.Money    `json:"subtotal"`
	Product  *models.Product `json:"product"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items      []CartLine   `json:"items"`
	TotalPrice models.Money `json:"total_price"`
	ItemCount  int          `json:"item_count"`
}

// CheckoutLine 结算行
type CheckoutLine struct {
	ProductID    uint         `json:"product_id"`
	ProductTitle string       `json:"product_title"`
	Quantity     int          `json:"quantity"`
	Price        models.Money `json:"price"`
	Subtotal     models.Money `json:"subtotal"`
}

// CheckoutSummary 结算汇总
type CheckoutSummary struct {
	Items      []CheckoutLine `json:"items"`
	TotalPrice models.Money   `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Summary 获取购物车汇总
func (s *CartService) Summary(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildCartSummary(items), nil
}

func buildCartSummary(items []models.CartItem) *CartSummary {
	summary := &CartSummary{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		subtotal := item.Product.Price.MulInt(item.Quantity)
		summary.Items = append(summary.Items, CartLine{
			ID:       item.ID,
			Quantity: item.Quantity,
			Subtotal: subtotal,
			Product:  item.Product,
		})
		summary.TotalPrice = summary.TotalPrice.AddMoney(subtotal)
		summary.ItemCount += item.Quantity
	}
	return summary
}

// AddItem 加购
// 商品必须存在；重复加购数量累加（唯一索引冲突路径，不做先查后写）。
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrCartQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	item, err := s.cartRepo.AddOrIncrement(userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// UpdateQuantity 更新数量
// 非本人行按不存在处理；数量小于等于 0 直接删除该行。
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (deleted bool, err error) {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return false, err
	}
	if item == nil || item.UserID != userID {
		return false, ErrCartItemNotFound
	}
	if quantity <= 0 {
		return true, s.cartRepo.Delete(itemID)
	}
	return false, s.cartRepo.UpdateQuantity(itemID, quantity)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(itemID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// Checkout 模拟结算
// 单事务内读取所有行、计算汇总、清空购物车；
// 空购物车直接返回错误且不产生任何写入，任何失败整体回滚。
func (s *CartService) Checkout(userID uint) (*CheckoutSummary, error) {
	var summary *CheckoutSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		items, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		result := &CheckoutSummary{Items: make([]CheckoutLine, 0, len(items))}
		for _, item := range items {
			if item.Product == nil {
				continue
			}
			subtotal := item.Product.Price.MulInt(item.Quantity)
			result.Items = append(result.Items, CheckoutLine{
				ProductID:    item.ProductID,
				ProductTitle: item.Product.Title,
				Quantity:     item.Quantity,
				Price:        item.Product.Price,
				Subtotal:     subtotal,
			})
			result.TotalPrice = result.TotalPrice.AddMoney(subtotal)
		}

		if err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}
		summary = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
