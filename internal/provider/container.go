package provider

import (
	"github.com/market-next/internal/cache"
	"github.com/market-next/internal/config"
	"github.com/market-next/internal/logger"
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"
	"github.com/market-next/internal/security/csrf"
	"github.com/market-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	CSRFManager *csrf.Manager

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	UserAuthService *service.UserAuthService
	UserService     *service.UserService
	ProductService  *service.ProductService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	ReviewService   *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存（失败降级为直连数据库）
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		CSRFManager: csrf.NewManager(cfg.Session.SecretKey),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CartRepo, c.WishlistRepo, c.ReviewRepo)
	c.CartService = service.NewCartService(models.DB, c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
}
