package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const nonceBytes = 16

// Manager 基于 HMAC 的双提交 CSRF 令牌管理器
// 令牌格式为 nonce.mac，mac = HMAC-SHA256(secret, nonce|subject)。
// subject 绑定会话 Cookie 原始值，未登录请求绑定固定匿名主体，
// 因此令牌既不可伪造也不可跨会话重放。
type Manager struct {
	secret []byte
}

// NewManager 创建 CSRF 令牌管理器
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue 为指定会话主体签发令牌
func (m *Manager) Issue(subject string) (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)
	return nonce + "." + m.sign(nonce, subject), nil
}

// Verify 校验令牌是否属于指定会话主体
func (m *Manager) Verify(token, subject string) bool {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return false
	}
	parts := strings.SplitN(trimmed, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	expected := m.sign(parts[0], subject)
	return hmac.Equal([]byte(parts[1]), []byte(expected))
}

func (m *Manager) sign(nonce, subject string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(nonce))
	mac.Write([]byte("|"))
	mac.Write([]byte(subject))
	return hex.EncodeToString(mac.Sum(nil))
}
