package server

import (
	"net/http"

	"github.com/kasuboski/animez/pkg/pagination"
)

// ParsePaginationParams extracts and validates the page and perPage query params
func ParsePaginationParams(r *http.Request) (pagination.Params, error) {
	qp := r.URL.Query()
	return pagination.Parse(qp.Get("page"), qp.Get("perPage"))
}
