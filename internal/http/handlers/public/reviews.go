package public

import (
	"net/http"

	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProductReviews 商品评价列表（公开）
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByProduct(productID)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	response.OK(c, "ok", gin.H{"reviews": reviews})
}

// ReviewRequest 评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateProductReview 创建评价
// 同一用户对同一商品仅允许一条。
func (h *Handler) CreateProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	review, err := h.ReviewService.Create(uid, productID, service.ReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, http.StatusInternalServerError, "failed to create review")
		return
	}
	response.Created(c, "review created", gin.H{"review": review})
}

// ListMyReviews 当前用户的评价列表
func (h *Handler) ListMyReviews(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByUser(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list reviews", err)
		return
	}
	response.OK(c, "ok", gin.H{"reviews": reviews})
}

// UpdateReview 更新评价（仅限作者本人）
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	review, err := h.ReviewService.Update(uid, reviewID, service.ReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, http.StatusInternalServerError, "failed to update review")
		return
	}
	response.OK(c, "review updated", gin.H{"review": review})
}

// DeleteReview 删除评价（仅限作者本人）
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(uid, reviewID); err != nil {
		respondWithMappedError(c, err, reviewErrorRules, http.StatusInternalServerError, "failed to delete review")
		return
	}
	response.OK(c, "review deleted", gin.H{"deleted": true})
}
