package dto

import (
	"net/http"
	"strconv"
	"strings"

	"hotel/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the URL query. With defaultRequest set, missing page and
// limit fall back to the defaults; otherwise absent values stay zero and the listing is unbounded.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page, err := strconv.Atoi(queryParams.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(queryParams.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = limit
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Sortable maps the public sort keys to qualified columns. Keys outside the map fall back to
// fallback so request input never reaches ORDER BY verbatim.
func (q *QueryParams) Sortable(columns map[string]string, fallback, fallbackDir string) {
	column, ok := columns[q.SortBy]
	if !ok {
		q.SortBy = fallback
		q.SortDir = fallbackDir

		return
	}

	q.SortBy = column
	if q.SortDir == "" {
		q.SortDir = fallbackDir
	}
}
