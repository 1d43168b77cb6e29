package public

import (
	"net/http"

	"github.com/market-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车汇总
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Summary(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load cart", err)
		return
	}
	response.OK(c, "ok", summary)
}

// CartAddRequest 加购请求
type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem 加购
// 重复加购同一商品时数量累加。
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, http.StatusInternalServerError, "failed to add cart item")
		return
	}
	response.Created(c, "item added to cart", gin.H{"item": item})
}

// CartUpdateRequest 更新数量请求
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem 更新购物车行数量
// 数量小于等于 0 等价于删除该行。
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}
	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	deleted, err := h.CartService.UpdateQuantity(uid, itemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, http.StatusInternalServerError, "failed to update cart item")
		return
	}
	if deleted {
		response.OK(c, "cart item removed", gin.H{"deleted": true})
		return
	}
	response.OK(c, "cart item updated", gin.H{"updated": true})
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, itemID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, http.StatusInternalServerError, "failed to remove cart item")
		return
	}
	response.OK(c, "cart item removed", gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear cart", err)
		return
	}
	response.OK(c, "cart cleared", gin.H{"cleared": true})
}

// Checkout 模拟结算
// 返回订单快照并清空购物车，不落任何订单数据。
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Checkout(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, http.StatusInternalServerError, "checkout failed")
		return
	}
	response.Created(c, "checkout successful", summary)
}
