package csrf

import (
	"net/http"
	"strings"

	"github.com/market-next/internal/config"
	"github.com/market-next/internal/constants"

	"github.com/gin-gonic/gin"
)

const tokenContextKey = "csrf_token"

// CookieName 解析 CSRF Cookie 名
func CookieName(cfg config.CSRFConfig) string {
	if name := strings.TrimSpace(cfg.CookieName); name != "" {
		return name
	}
	return constants.CSRFCookieDefault
}

// HeaderName 解析 CSRF Header 名
func HeaderName(cfg config.CSRFConfig) string {
	if name := strings.TrimSpace(cfg.HeaderName); name != "" {
		return name
	}
	return constants.CSRFHeaderDefault
}

// FormField 解析 CSRF 表单字段名
func FormField(cfg config.CSRFConfig) string {
	if name := strings.TrimSpace(cfg.FormField); name != "" {
		return name
	}
	return constants.CSRFFormFieldDefault
}

// Subject 解析当前请求的 CSRF 绑定主体
// 主体为会话 Cookie 的原始值，未携带会话时为固定匿名主体。
func Subject(c *gin.Context, sessionCookieName string) string {
	raw, err := c.Cookie(sessionCookieName)
	if err != nil || strings.TrimSpace(raw) == "" {
		return constants.CSRFAnonymousSubject
	}
	return raw
}

// WriteCookie 为指定主体签发令牌并写入 Cookie
// Cookie 不设 HttpOnly（前端需读取后回传）；
// Secure 与 SameSite=Strict 仅在 release 模式启用。
func WriteCookie(c *gin.Context, m *Manager, cfg config.CSRFConfig, release bool, subject string) (string, error) {
	token, err := m.Issue(subject)
	if err != nil {
		return "", err
	}

	maxAge := cfg.TTLSeconds
	if maxAge <= 0 {
		maxAge = 3600
	}
	sameSite := http.SameSiteDefaultMode
	if release {
		sameSite = http.SameSiteStrictMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(CookieName(cfg), token, maxAge, "/", "", release, false)
	c.Set(tokenContextKey, token)
	return token, nil
}

// TokenFromContext 读取本次响应签发的令牌
func TokenFromContext(c *gin.Context) string {
	value, ok := c.Get(tokenContextKey)
	if !ok {
		return ""
	}
	if token, ok := value.(string); ok {
		return token
	}
	return ""
}

// TokenFromRequest 从请求中提取客户端回传的令牌
// 优先读取 Header，其次读取表单字段。
func TokenFromRequest(c *gin.Context, cfg config.CSRFConfig) string {
	if token := strings.TrimSpace(c.GetHeader(HeaderName(cfg))); token != "" {
		return token
	}
	return strings.TrimSpace(c.PostForm(FormField(cfg)))
}
