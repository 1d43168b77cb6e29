package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/market-next/internal/cache"
	"github.com/market-next/internal/config"
	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/repository"
	"github.com/market-next/internal/security/csrf"
	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// debug 模式下未配置来源时放行的本地前端地址
var debugDefaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// CORSMiddleware 跨域中间件
// 未显式配置来源时按运行模式取默认值：debug 放行本地开发前端，
// release 放行所有来源（携带凭证时回显请求 Origin）。
func CORSMiddleware(cfg config.CORSConfig, release bool) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		if release {
			allowedOrigins = []string{"*"}
		} else {
			allowedOrigins = debugDefaultOrigins
		}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Cache-Control",
			"X-Requested-With",
			constants.CSRFHeaderDefault,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// TransportGuardMiddleware 传输层守卫
// release 模式下反向代理声明明文 HTTP 的请求 301 跳转到 HTTPS；
// OPTIONS 放行，预检由 CORS 中间件应答。
func TransportGuardMiddleware(release bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !release || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}
		proto := strings.ToLower(strings.TrimSpace(c.GetHeader(constants.ForwardedProtoHeader)))
		if proto == constants.ForwardedProtoInsecure {
			target := "https://" + c.Request.Host + c.Request.RequestURI
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFMiddleware CSRF 双提交校验中间件
// 每个请求进入时签发绑定当前会话主体的令牌（刷新 Cookie），
// 非安全方法必须回传与主体匹配的令牌，否则 403。
func CSRFMiddleware(manager *csrf.Manager, cfg config.CSRFConfig, sessionCookieName string, release bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := csrf.Subject(c, sessionCookieName)

		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
			token := csrf.TokenFromRequest(c, cfg)
			if token == "" || !manager.Verify(token, subject) {
				response.BadRequest(c, "CSRF token missing or invalid")
				c.Abort()
				return
			}
		}

		if _, err := csrf.WriteCookie(c, manager, cfg, release, subject); err != nil {
			response.Internal(c, "failed to issue CSRF token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionAuthMiddleware 会话鉴权中间件
// 从 HttpOnly Cookie 读取会话令牌，校验签名与有效期后，
// 优先用 Redis 鉴权快照校验账号状态与令牌版本，未命中回源数据库。
func SessionAuthMiddleware(authService *service.UserAuthService, userRepo repository.UserRepository, sessionCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(raw) == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := authService.ParseSessionToken(raw)
		if err != nil || claims.UserID == 0 {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		if cached, hit, cacheErr := cache.GetUserAuthState(c.Request.Context(), claims.UserID); cacheErr == nil && hit && cached != nil {
			if !isActiveUserStatus(cached.Status) {
				response.Forbidden(c, "account disabled")
				c.Abort()
				return
			}
			if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
				response.Unauthorized(c, "session revoked")
				c.Abort()
				return
			}
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Next()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}
		if !isActiveUserStatus(user.Status) {
			response.Forbidden(c, "account disabled")
			c.Abort()
			return
		}
		if claims.TokenVersion != user.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, user.TokenInvalidBefore) {
			response.Unauthorized(c, "session revoked")
			c.Abort()
			return
		}
		_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}

func isActiveUserStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == constants.UserStatusActive
}
