package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt 读取整数查询参数，解析失败回退默认值。
func QueryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
