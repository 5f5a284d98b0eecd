package common

import (
	"net/http"
	"strconv"
)

// PagedResult holds pagination metadata for list responses.
type PagedResult struct {
	TotalPage     int   `json:"totalPage"`
	TotalElements int64 `json:"totalElements"`
}

// ParsePageSize extracts page and size parameters from query values. Page is
// zero-based; size falls back to the provided default.
func ParsePageSize(r *http.Request, defaultSize int) (page, size int) {
	page = 0
	size = defaultSize
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p >= 0 {
		page = p
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		size = s
	}
	return
}

// TotalPages computes the page count for the given element total.
func TotalPages(totalElements int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(totalElements) / size
	if int(totalElements)%size != 0 {
		pages++
	}
	return pages
}
