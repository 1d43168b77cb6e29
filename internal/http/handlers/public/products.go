package public

import (
	"net/http"

	"github.com/market-next/internal/constants"
	handlershared "github.com/market-next/internal/http/handlers/shared"
	"github.com/market-next/internal/http/response"
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"
	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 公开商品列表
// 支持 page/per_page 分页、search 模糊检索与白名单排序。
func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		Page:      handlershared.QueryInt(c, "page", constants.DefaultPage),
		PerPage:   handlershared.QueryInt(c, "per_page", constants.DefaultPerPage),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("order"),
	}

	result, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list products", err)
		return
	}
	response.OKWithMeta(c, "ok", gin.H{"products": result.Products}, response.Meta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, http.StatusInternalServerError, "failed to load product")
		return
	}
	response.OK(c, "ok", gin.H{"product": product})
}

// ListMyProducts 当前用户名下的商品
func (h *Handler) ListMyProducts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	products, err := h.ProductService.ListBySeller(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list products", err)
		return
	}
	response.OK(c, "ok", gin.H{"products": products})
}

// ProductCreateRequest 创建商品请求
type ProductCreateRequest struct {
	Title         string       `json:"title" binding:"required"`
	Description   string       `json:"description" binding:"required"`
	Price         models.Money `json:"price"`
	CoverImageURL string       `json:"cover_image_url"`
}

// CreateProduct 创建商品
// 卖家始终为当前登录用户，请求中的 seller_id 一律忽略。
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(uid, service.CreateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, http.StatusInternalServerError, "failed to create product")
		return
	}
	response.Created(c, "product created", gin.H{"product": product})
}

// ProductUpdateRequest 更新商品请求（缺省字段保持不变）
type ProductUpdateRequest struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Price         *models.Money `json:"price"`
	CoverImageURL *string       `json:"cover_image_url"`
}

// UpdateProduct 更新商品（仅限卖家本人）
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(uid, id, service.UpdateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, http.StatusInternalServerError, "failed to update product")
		return
	}
	response.OK(c, "product updated", gin.H{"product": product})
}

// DeleteProduct 删除商品（仅限卖家本人）
// 同一事务内级联清理购物车、心愿单与评价中的引用。
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, http.StatusInternalServerError, "failed to delete product")
		return
	}
	response.OK(c, "product deleted", gin.H{"deleted": true})
}
