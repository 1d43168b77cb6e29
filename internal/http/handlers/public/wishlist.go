package public

import (
	"net/http"

	"github.com/market-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load wishlist", err)
		return
	}
	response.OK(c, "ok", gin.H{"items": items})
}

// AddWishlistItem 收藏商品
// 重复收藏返回冲突。
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	item, err := h.WishlistService.Add(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, http.StatusInternalServerError, "failed to add wishlist item")
		return
	}
	response.Created(c, "item added to wishlist", gin.H{"item": item})
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, http.StatusInternalServerError, "failed to remove wishlist item")
		return
	}
	response.OK(c, "item removed from wishlist", gin.H{"deleted": true})
}
