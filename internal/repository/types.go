package repository

// ProductListFilter 查询商品列表的过滤条件
// SortBy/SortOrder 由 service 层校验白名单后传入。
type ProductListFilter struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}
