package main

import (
	"fmt"
	"time"

	"github.com/market-next/internal/config"
	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/logger"
	"github.com/market-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据：按自然键（用户名 / 卖家+标题 / 用户+商品）幂等写入，可重复执行。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示用户
	type seedUser struct {
		Username    string
		Email       string
		Password    string
		DisplayName string
	}
	seedUsers := []seedUser{
		{Username: "alice", Email: "alice@example.com", Password: "alice-demo-pass", DisplayName: "Alice"},
		{Username: "bob", Email: "bob@example.com", Password: "bob-demo-pass", DisplayName: "Bob"},
		{Username: "carol", Email: "carol@example.com", Password: "carol-demo-pass", DisplayName: "Carol"},
	}

	userIDs := map[string]uint{}
	for _, su := range seedUsers {
		var existing models.User
		if err := models.DB.Where("username = ?", su.Username).First(&existing).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				stdLog.Printf("Failed to hash password for %s: %v", su.Username, err)
				continue
			}
			user := models.User{
				Username:     su.Username,
				Email:        su.Email,
				PasswordHash: string(hash),
				DisplayName:  su.DisplayName,
				Status:       constants.UserStatusActive,
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", su.Username, err)
				continue
			}
			stdLog.Printf("Created user: %s", su.Username)
			userIDs[su.Username] = user.ID
		} else {
			stdLog.Printf("User already exists: %s", su.Username)
			userIDs[su.Username] = existing.ID
		}
	}

	// 演示商品
	type seedProduct struct {
		Seller        string
		Title         string
		Description   string
		Price         float64
		CoverImageURL string
	}
	seedProducts := []seedProduct{
		{
			Seller:        "alice",
			Title:         "Wireless Bluetooth Earphones",
			Description:   "High quality sound, long battery life, comfortable to wear.",
			Price:         99.99,
			CoverImageURL: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
		},
		{
			Seller:        "alice",
			Title:         "Smart Watch",
			Description:   "Health monitoring, fitness tracking, message notifications.",
			Price:         199.99,
			CoverImageURL: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
		},
		{
			Seller:        "bob",
			Title:         "Portable Power Bank",
			Description:   "High capacity, fast charging, multi-device compatible.",
			Price:         49.99,
			CoverImageURL: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
		},
		{
			Seller:        "bob",
			Title:         "Multi-function Backpack",
			Description:   "Large capacity, waterproof and anti-theft, USB charging port.",
			Price:         79.99,
			CoverImageURL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
		},
		{
			Seller:        "carol",
			Title:         "Mechanical Keyboard",
			Description:   "Hot-swappable switches, PBT keycaps, USB-C connection.",
			Price:         129.00,
			CoverImageURL: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=800",
		},
	}

	productIDs := map[string]uint{}
	for _, sp := range seedProducts {
		sellerID := userIDs[sp.Seller]
		if sellerID == 0 {
			stdLog.Printf("Skip product %s: seller %s missing", sp.Title, sp.Seller)
			continue
		}
		price := models.NewMoneyFromDecimal(decimal.NewFromFloat(sp.Price))
		var existing models.Product
		if err := models.DB.Where("seller_id = ? AND title = ?", sellerID, sp.Title).First(&existing).Error; err != nil {
			product := models.Product{
				SellerID:      sellerID,
				Title:         sp.Title,
				Description:   sp.Description,
				Price:         price,
				CoverImageURL: sp.CoverImageURL,
			}
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", sp.Title, err)
				continue
			}
			stdLog.Printf("Created product: %s", sp.Title)
			productIDs[sp.Title] = product.ID
		} else {
			existing.Description = sp.Description
			existing.Price = price
			existing.CoverImageURL = sp.CoverImageURL
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", sp.Title, err)
				continue
			}
			stdLog.Printf("Updated product: %s", sp.Title)
			productIDs[sp.Title] = existing.ID
		}
	}

	// 演示评价
	type seedReview struct {
		User    string
		Product string
		Rating  int
		Title   string
		Content string
	}
	seedReviews := []seedReview{
		{
			User:    "bob",
			Product: "Wireless Bluetooth Earphones",
			Rating:  5,
			Title:   "Great sound for the price",
			Content: "Battery easily lasts a full work day and the fit is comfortable.",
		},
		{
			User:    "carol",
			Product: "Wireless Bluetooth Earphones",
			Rating:  4,
			Title:   "Solid, minor pairing quirks",
			Content: "Pairing with two devices at once is flaky, otherwise excellent.",
		},
		{
			User:    "alice",
			Product: "Portable Power Bank",
			Rating:  5,
			Title:   "Charges fast",
			Content: "Topped up my phone twice on a weekend trip with capacity to spare.",
		},
	}

	for _, sr := range seedReviews {
		userID := userIDs[sr.User]
		productID := productIDs[sr.Product]
		if userID == 0 || productID == 0 {
			stdLog.Printf("Skip review by %s on %s: missing user or product", sr.User, sr.Product)
			continue
		}
		var existing models.Review
		if err := models.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error; err != nil {
			review := models.Review{
				UserID:    userID,
				ProductID: productID,
				Rating:    sr.Rating,
				Title:     sr.Title,
				Content:   sr.Content,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := models.DB.Create(&review).Error; err != nil {
				stdLog.Printf("Failed to create review by %s on %s: %v", sr.User, sr.Product, err)
			} else {
				stdLog.Printf("Created review: %s on %s", sr.User, sr.Product)
			}
		} else {
			stdLog.Printf("Review already exists: %s on %s", sr.User, sr.Product)
		}
	}

	// 演示心愿单
	type seedWishlist struct {
		User    string
		Product string
	}
	seedWishlists := []seedWishlist{
		{User: "alice", Product: "Mechanical Keyboard"},
		{User: "bob", Product: "Smart Watch"},
		{User: "carol", Product: "Multi-function Backpack"},
	}

	for _, sw := range seedWishlists {
		userID := userIDs[sw.User]
		productID := productIDs[sw.Product]
		if userID == 0 || productID == 0 {
			stdLog.Printf("Skip wishlist entry %s -> %s: missing user or product", sw.User, sw.Product)
			continue
		}
		var existing models.WishlistItem
		if err := models.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error; err != nil {
			item := models.WishlistItem{
				UserID:    userID,
				ProductID: productID,
				CreatedAt: time.Now(),
			}
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create wishlist entry %s -> %s: %v", sw.User, sw.Product, err)
			} else {
				stdLog.Printf("Created wishlist entry: %s -> %s", sw.User, sw.Product)
			}
		} else {
			stdLog.Printf("Wishlist entry already exists: %s -> %s", sw.User, sw.Product)
		}
	}

	fmt.Println("\nSeed data ready:")
	fmt.Println("- 3 users (alice / bob / carol)")
	fmt.Println("- 5 products")
	fmt.Println("- 3 reviews")
	fmt.Println("- 3 wishlist entries")
}
