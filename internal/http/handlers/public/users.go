package public

import (
	"errors"
	"net/http"

	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUsers 公开用户目录
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	response.OK(c, "ok", gin.H{"users": users})
}

// GetUser 获取单个用户公开信息
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.UserService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}
	response.OK(c, "ok", gin.H{"user": user})
}
