package note

import (
	"strings"

	"github.com/google/uuid"

	"notes/internal/paging"
)

type Sort string

const (
	SortUpdatedAt Sort = "updated_at"
	SortCreatedAt Sort = "created_at"
	SortTitle     Sort = "title"
)

type Order string

const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Query is what a caller asks for: a text filter and a 1-based page.
type Query struct {
	Search   string
	Page     int
	PageSize int
	Sort     Sort
	Order    Order
}

// Normalize applies defaults and clamps values. Whitespace-only search text
// becomes the empty filter.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	switch q.Sort {
	case SortUpdatedAt, SortCreatedAt, SortTitle:
	default:
		q.Sort = SortUpdatedAt
	}
	switch q.Order {
	case OrderDesc, OrderAsc:
	default:
		q.Order = OrderDesc
	}
	return q
}

// Filter is a Query resolved for one owner into an offset/limit window.
type Filter struct {
	OwnerID uuid.UUID
	Search  string
	Sort    Sort
	Order   Order
	Offset  int
	Limit   int
}

// Filter scopes the normalized query to owner.
func (q Query) Filter(owner uuid.UUID) Filter {
	q = q.Normalize()
	offset, limit := paging.Window(q.Page, q.PageSize)
	return Filter{
		OwnerID: owner,
		Search:  q.Search,
		Sort:    q.Sort,
		Order:   q.Order,
		Offset:  offset,
		Limit:   limit,
	}
}
