package public

import (
	"errors"
	"net/http"

	"github.com/market-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	status  int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackStatus int, fallbackMessage string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.status, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackStatus, fallbackMessage, err)
}

var signupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUsername, status: http.StatusBadRequest, message: "username must be 3-32 characters (letters, digits, dot, dash, underscore)"},
	{target: service.ErrInvalidEmail, status: http.StatusBadRequest, message: "invalid email address"},
	{target: service.ErrWeakPassword, status: http.StatusBadRequest, message: "password does not meet the minimum length"},
	{target: service.ErrUsernameExists, status: http.StatusConflict, message: "username already taken"},
	{target: service.ErrEmailExists, status: http.StatusConflict, message: "email already registered"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, message: "invalid credentials"},
	{target: service.ErrUserDisabled, status: http.StatusForbidden, message: "account disabled"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "product not found"},
	{target: service.ErrNotProductOwner, status: http.StatusForbidden, message: "not the product owner"},
	{target: service.ErrProductTitleInvalid, status: http.StatusBadRequest, message: "product title is required and limited to 100 characters"},
	{target: service.ErrProductDescriptionRequired, status: http.StatusBadRequest, message: "product description is required"},
	{target: service.ErrProductPriceInvalid, status: http.StatusBadRequest, message: "product price must not be negative"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "product not found"},
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound, message: "cart item not found"},
	{target: service.ErrCartQuantityInvalid, status: http.StatusBadRequest, message: "quantity must be at least 1"},
	{target: service.ErrCartEmpty, status: http.StatusBadRequest, message: "cart is empty"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "product not found"},
	{target: service.ErrWishlistDuplicate, status: http.StatusConflict, message: "product already in wishlist"},
	{target: service.ErrWishlistItemNotFound, status: http.StatusNotFound, message: "wishlist item not found"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "product not found"},
	{target: service.ErrReviewNotFound, status: http.StatusNotFound, message: "review not found"},
	{target: service.ErrNotReviewOwner, status: http.StatusForbidden, message: "not the review owner"},
	{target: service.ErrReviewDuplicate, status: http.StatusConflict, message: "you have already reviewed this product"},
	{target: service.ErrReviewRatingInvalid, status: http.StatusBadRequest, message: "rating must be between 1 and 5"},
	{target: service.ErrReviewTitleInvalid, status: http.StatusBadRequest, message: "review title is required and limited to 100 characters"},
	{target: service.ErrReviewContentInvalid, status: http.StatusBadRequest, message: "review content is required and limited to 500 characters"},
}
