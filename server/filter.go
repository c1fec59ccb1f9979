package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kasuboski/animez/pkg/anilist"
	"github.com/samber/lo"
)

// ParseFilter builds an advanced search filter from the query params
func ParseFilter(r *http.Request) (anilist.Filter, error) {
	qp := r.URL.Query()

	id, err := parseOptionalInt(qp.Get("id"))
	if err != nil {
		return anilist.Filter{}, fmt.Errorf("invalid id: %w", err)
	}
	year, err := parseOptionalInt(qp.Get("year"))
	if err != nil {
		return anilist.Filter{}, fmt.Errorf("invalid year: %w", err)
	}

	return anilist.Filter{
		Query:  qp.Get("query"),
		Format: qp.Get("format"),
		Sort:   listParam(qp["sort"]),
		Genres: listParam(qp["genres"]),
		ID:     id,
		Year:   year,
		Status: qp.Get("status"),
		Season: qp.Get("season"),
	}, nil
}

func parseOptionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func listParam(values []string) []string {
	parts := lo.FlatMap(values, func(v string, _ int) []string {
		return lo.Map(strings.Split(v, ","), func(p string, _ int) string {
			return strings.TrimSpace(p)
		})
	})
	parts = lo.Compact(parts)
	if len(parts) == 0 {
		return nil
	}
	return parts
}
