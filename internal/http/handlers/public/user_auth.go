package public

import (
	"net/http"
	"time"

	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// Signup 用户注册
// 注册成功即登录：写入会话 Cookie 并重绑 CSRF 令牌。
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		respondWithMappedError(c, err, signupErrorRules, http.StatusInternalServerError, "signup failed")
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	csrfToken := h.rebindCSRF(c, token)
	response.Created(c, "signup successful", gin.H{
		"user":       userProfileResponse(user),
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"csrf_token": csrfToken,
	})
}

// LoginRequest 登录请求
// credential 支持用户名或邮箱。
type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Credential, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, http.StatusInternalServerError, "login failed")
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	csrfToken := h.rebindCSRF(c, token)
	response.OK(c, "login successful", gin.H{
		"user":       userProfileResponse(user),
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"csrf_token": csrfToken,
	})
}

// Logout 登出
// 清除会话 Cookie、丢弃服务端鉴权快照，并重绑匿名 CSRF 令牌。
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	h.UserAuthService.Logout(c.Request.Context(), uid)
	h.clearSessionCookie(c)
	csrfToken := h.rebindCSRF(c, constants.CSRFAnonymousSubject)
	response.OK(c, "logout successful", gin.H{
		"csrf_token": csrfToken,
	})
}

// GetCurrentUser 获取当前登录用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.OK(c, "ok", gin.H{"user": userProfileResponse(user)})
}

func userProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	}
}
