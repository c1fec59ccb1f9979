package pagination

import (
	"fmt"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 50
)

type Params struct {
	Page    int `json:"page" yaml:"page"`
	PerPage int `json:"perPage" yaml:"perPage"`
}

// Parse reads page and perPage strings as sent by clients. Empty values fall back to the defaults.
func Parse(page, perPage string) (Params, error) {
	var p Params
	var err error

	if page != "" {
		p.Page, err = strconv.Atoi(page)
		if err != nil {
			return p, fmt.Errorf("invalid page %q", page)
		}
	}

	if perPage != "" {
		p.PerPage, err = strconv.Atoi(perPage)
		if err != nil {
			return p, fmt.Errorf("invalid perPage %q", perPage)
		}
	}

	return p.WithDefaults(), nil
}

// WithDefaults returns p with page at least 1 and perPage clamped to (0, MaxPerPage]
func (p Params) WithDefaults() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Params) BuildMeta(totalItems int, hasNextPage bool) Meta {
	totalPages := 0
	if p.PerPage > 0 {
		totalPages = (totalItems + p.PerPage - 1) / p.PerPage
	}
	return Meta{
		Page:        p.Page,
		PerPage:     p.PerPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: hasNextPage,
	}
}

type Meta struct {
	Page        int  `json:"page" yaml:"page"`
	PerPage     int  `json:"perPage" yaml:"perPage"`
	TotalItems  int  `json:"totalItems" yaml:"totalItems"`
	TotalPages  int  `json:"totalPages" yaml:"totalPages"`
	HasNextPage bool `json:"hasNextPage" yaml:"hasNextPage"`
}

// Page is one page of results
type Page[T any] struct {
	Meta    Meta `json:"meta" yaml:"meta"`
	Results []T  `json:"results" yaml:"results"`
}
