package public

import (
	"net/http"
	"strconv"

	handlershared "github.com/market-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string, err error) {
	handlershared.RespondError(c, status, message, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(value), true
}
