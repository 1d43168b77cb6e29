package service

import "errors"

// 认证与用户错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password too weak")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserNotFound       = errors.New("user not found")
)

// 商品错误
var (
	ErrProductNotFound            = errors.New("product not found")
	ErrProductTitleInvalid        = errors.New("product title invalid")
	ErrProductDescriptionRequired = errors.New("product description required")
	ErrProductPriceInvalid        = errors.New("product price invalid")
	ErrNotProductOwner            = errors.New("not product owner")
)

// 购物车错误
var (
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartQuantityInvalid = errors.New("cart quantity invalid")
	ErrCartEmpty           = errors.New("cart is empty")
)

// 心愿单错误
var (
	ErrWishlistDuplicate    = errors.New("product already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

// 评价错误
var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewDuplicate      = errors.New("review already exists")
	ErrReviewRatingInvalid  = errors.New("review rating invalid")
	ErrReviewTitleInvalid   = errors.New("review title invalid")
	ErrReviewContentInvalid = errors.New("review content invalid")
	ErrNotReviewOwner       = errors.New("not review owner")
)
