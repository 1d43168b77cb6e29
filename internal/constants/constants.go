package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品列表排序字段常量
const (
	ProductSortByID        = "id"
	ProductSortByTitle     = "title"
	ProductSortByPrice     = "price"
	ProductSortByCreatedAt = "created_at"
	ProductSortByUpdatedAt = "updated_at"
)

// 排序方向常量
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 商品列表支持的排序字段
var ProductSortFields = []string{
	ProductSortByID,
	ProductSortByTitle,
	ProductSortByPrice,
	ProductSortByCreatedAt,
	ProductSortByUpdatedAt,
}

// 分页常量
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// 评价内容约束常量
const (
	ReviewRatingMin     = 1
	ReviewRatingMax     = 5
	ReviewTitleMaxLen   = 100
	ReviewContentMaxLen = 500
)

// 商品内容约束常量
const (
	ProductTitleMaxLen = 100
)

// 会话与 CSRF 常量
const (
	SessionCookieDefault   = "session"
	CSRFCookieDefault      = "csrf_token"
	CSRFHeaderDefault      = "X-CSRF-Token"
	CSRFFormFieldDefault   = "csrf_token"
	CSRFAnonymousSubject   = "anon"
	ForwardedProtoHeader   = "X-Forwarded-Proto"
	ForwardedProtoInsecure = "http"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mn"
)
