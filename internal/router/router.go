package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/market-next/internal/cache"
	"github.com/market-next/internal/config"
	"github.com/market-next/internal/constants"
	publichandlers "github.com/market-next/internal/http/handlers/public"
	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/logger"
	"github.com/market-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	release := cfg.Server.IsRelease()
	sessionCookieName := cfg.Session.CookieName
	if sessionCookieName == "" {
		sessionCookieName = constants.SessionCookieDefault
	}
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件链：恢复 → 请求 ID → 日志 → 传输守卫 → CORS → CSRF
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(TransportGuardMiddleware(release))
	r.Use(CORSMiddleware(cfg.CORS, release))
	r.Use(CSRFMiddleware(c.CSRFManager, cfg.CSRF, sessionCookieName, release))

	sessionAuth := SessionAuthMiddleware(c.UserAuthService, c.UserRepo, sessionCookieName)

	api := r.Group("/api")
	{
		api.GET("/csrf/restore", publicHandler.RestoreCSRF)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", publicHandler.Signup)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("credential")), publicHandler.Login)
			auth.GET("/", sessionAuth, publicHandler.GetCurrentUser)
			auth.POST("/logout", sessionAuth, publicHandler.Logout)
		}

		users := api.Group("/users")
		{
			users.GET("", publicHandler.ListUsers)
			users.GET("/:id", publicHandler.GetUser)
		}

		products := api.Group("/products")
		{
			products.GET("", publicHandler.ListProducts)
			products.GET("/manage", sessionAuth, publicHandler.ListMyProducts)
			products.GET("/:id", publicHandler.GetProduct)
			products.POST("", sessionAuth, publicHandler.CreateProduct)
			products.PUT("/:id", sessionAuth, publicHandler.UpdateProduct)
			products.DELETE("/:id", sessionAuth, publicHandler.DeleteProduct)

			products.GET("/:id/reviews", publicHandler.ListProductReviews)
			products.POST("/:id/reviews", sessionAuth, publicHandler.CreateProductReview)
		}

		cart := api.Group("/cart", sessionAuth)
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/add", publicHandler.AddCartItem)
			cart.PUT("/update/:item_id", publicHandler.UpdateCartItem)
			cart.DELETE("/remove/:item_id", publicHandler.RemoveCartItem)
			cart.DELETE("/clear", publicHandler.ClearCart)
			cart.POST("/checkout", publicHandler.Checkout)
		}

		wishlist := api.Group("/wishlist", sessionAuth)
		{
			wishlist.GET("", publicHandler.GetWishlist)
			wishlist.POST("/:product_id", publicHandler.AddWishlistItem)
			wishlist.DELETE("/:product_id", publicHandler.RemoveWishlistItem)
		}

		reviews := api.Group("/reviews", sessionAuth)
		{
			reviews.GET("/my-reviews", publicHandler.ListMyReviews)
			reviews.PUT("/:id", publicHandler.UpdateReview)
			reviews.DELETE("/:id", publicHandler.DeleteReview)
		}

		api.GET("/docs", func(ctx *gin.Context) {
			response.OK(ctx, "ok", gin.H{"routes": buildAPIRouteCatalog(r)})
		})
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// SPA 回退：非 API 路径优先返回构建产物，其次回退 index.html
	registerSPAFallback(r, cfg.Frontend.DistDir)

	return r
}

type apiRouteCatalogItem struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func buildAPIRouteCatalog(engine *gin.Engine) []apiRouteCatalogItem {
	if engine == nil {
		return []apiRouteCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]apiRouteCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/") {
			continue
		}
		key := method + " " + item.Path
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, apiRouteCatalogItem{Method: method, Path: item.Path})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Path == items[j].Path {
			return items[i].Method < items[j].Method
		}
		return items[i].Path < items[j].Path
	})

	return items
}

func registerSPAFallback(r *gin.Engine, distDir string) {
	distDir = strings.TrimSpace(distDir)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != "GET" && c.Request.Method != "HEAD" {
			response.NotFound(c, "route not found")
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.NotFound(c, "route not found")
			return
		}
		if distDir == "" {
			response.NotFound(c, "route not found")
			return
		}

		requested := filepath.Join(distDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		index := filepath.Join(distDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.Status(http.StatusNotFound)
	})
}
