package public

import (
	"net/http"
	"time"

	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/http/handlers/shared"
	"github.com/market-next/internal/provider"
	"github.com/market-next/internal/security/csrf"

	"github.com/gin-gonic/gin"
)

// Handler 前台/公开接口处理器入口
// 说明：该处理器覆盖全部游客与登录用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func (h *Handler) sessionCookieName() string {
	if name := h.Config.Session.CookieName; name != "" {
		return name
	}
	return constants.SessionCookieDefault
}

// setSessionCookie 写入会话 Cookie
// HttpOnly 始终开启；Secure 与 SameSite=Strict 仅在 release 模式启用。
func (h *Handler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = 1
	}
	release := h.Config.Server.IsRelease()
	sameSite := http.SameSiteDefaultMode
	if release {
		sameSite = http.SameSiteStrictMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(h.sessionCookieName(), token, maxAge, "/", "", release, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	release := h.Config.Server.IsRelease()
	c.SetSameSite(http.SameSiteDefaultMode)
	c.SetCookie(h.sessionCookieName(), "", -1, "/", "", release, true)
}

// rebindCSRF 会话切换（登录/注册/登出）后重新签发绑定新主体的 CSRF 令牌
// 中间件在进入 handler 前签发的令牌绑定的是旧主体，这里必须覆盖。
func (h *Handler) rebindCSRF(c *gin.Context, subject string) string {
	token, err := csrf.WriteCookie(c, h.CSRFManager, h.Config.CSRF, h.Config.Server.IsRelease(), subject)
	if err != nil {
		shared.RequestLog(c).Errorw("csrf_rebind_failed", "error", err)
		return ""
	}
	return token
}
