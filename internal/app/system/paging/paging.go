// Package paging implements page/limit pagination for list endpoints.
//
// Clients pass 1-based "page" and "limit" query parameters; responses carry
// a pagination block with next/prev references computed from the total
// matching count. Skip/limit is fine at lab scale; lists are bounded per
// tenant, not global.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// Defaults and bounds for the limit parameter.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds the parsed pagination inputs for one request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads "page" and "limit" from the request query. Missing or
// invalid values fall back to the defaults; limit is clamped to MaxLimit.
func Parse(r *http.Request) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Limit64 returns the limit as int64 for Mongo Find options.
func (p Params) Limit64() int64 {
	return int64(p.Limit)
}

// PageRef points a client at an adjacent page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the response block describing adjacent pages. Next and
// Prev are omitted when no such page exists.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Build computes the pagination block from the request params and the
// total number of matching documents.
func Build(p Params, total int64) Pagination {
	var pg Pagination
	if p.Skip()+p.Limit64() < total {
		pg.Next = &PageRef{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.Page > 1 {
		pg.Prev = &PageRef{Page: p.Page - 1, Limit: p.Limit}
	}
	return pg
}
