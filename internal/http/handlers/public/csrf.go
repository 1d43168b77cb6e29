package public

import (
	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/security/csrf"

	"github.com/gin-gonic/gin"
)

// RestoreCSRF 返回绑定当前会话主体的 CSRF 令牌
// 中间件已在请求进入时签发并写入 Cookie，这里只回显令牌值，
// 供丢失 Cookie 副本的前端恢复。
func (h *Handler) RestoreCSRF(c *gin.Context) {
	token := csrf.TokenFromContext(c)
	if token == "" {
		subject := csrf.Subject(c, h.sessionCookieName())
		token = h.rebindCSRF(c, subject)
	}
	response.OK(c, "ok", gin.H{"csrf_token": token})
}
