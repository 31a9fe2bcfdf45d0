package models

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page selects one page of a list endpoint. Zero values fall back to the
// backend defaults (page 1, 10 items).
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize replaces non-positive fields with defaults.
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Query renders the page as URL query parameters.
func (p Page) Query() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	return q
}
