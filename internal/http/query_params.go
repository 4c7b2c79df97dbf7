package http

import (
	"fmt"
	"net/url"
	"strconv"

	"smartbudget/internal/core"
	"smartbudget/internal/storage"
)

// parseListParams validates the transaction list query string and collects
// every violation instead of stopping at the first.
func parseListParams(query url.Values) (storage.ListParams, []core.FieldError) {
	var errs []core.FieldError

	params := storage.ListParams{
		Page:      1,
		Limit:     storage.DefaultPageLimit,
		SortBy:    storage.DefaultSortBy,
		SortOrder: storage.DefaultSortOrder,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, core.FieldError{
				Field:   "page",
				Message: "page must be a positive integer",
			})
		} else {
			params.Page = page
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > storage.MaxPageLimit {
			errs = append(errs, core.FieldError{
				Field:   "limit",
				Message: fmt.Sprintf("limit must be between 1 and %d", storage.MaxPageLimit),
			})
		} else {
			params.Limit = limit
		}
	}

	if raw := query.Get("type"); raw != "" {
		if !core.ValidType(raw) {
			errs = append(errs, core.FieldError{
				Field:   "type",
				Message: `type must be either "income" or "expense"`,
			})
		} else {
			params.Filter.Type = raw
		}
	}

	if raw := query.Get("category"); raw != "" {
		if !core.InCatalog(raw) {
			errs = append(errs, core.FieldError{
				Field:   "category",
				Message: fmt.Sprintf("Category %q is not valid. Please use one of the predefined categories.", raw),
			})
		} else {
			params.Filter.Category = raw
		}
	}

	if raw := query.Get("startDate"); raw != "" {
		if !core.ValidDate(raw) {
			errs = append(errs, core.FieldError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		} else {
			params.Filter.StartDate = raw
		}
	}

	if raw := query.Get("endDate"); raw != "" {
		if !core.ValidDate(raw) {
			errs = append(errs, core.FieldError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		} else {
			params.Filter.EndDate = raw
		}
	}

	if params.Filter.StartDate != "" && params.Filter.EndDate != "" &&
		params.Filter.StartDate > params.Filter.EndDate {
		errs = append(errs, core.FieldError{
			Field:   "endDate",
			Message: "endDate must be greater than or equal to startDate",
		})
	}

	if raw := query.Get("sortBy"); raw != "" {
		if !storage.ValidSortBy(raw) {
			errs = append(errs, core.FieldError{
				Field:   "sortBy",
				Message: "sortBy must be one of: date, amount, category, createdAt",
			})
		} else {
			params.SortBy = raw
		}
	}

	if raw := query.Get("sortOrder"); raw != "" {
		if raw != "asc" && raw != "desc" {
			errs = append(errs, core.FieldError{
				Field:   "sortOrder",
				Message: `sortOrder must be either "asc" or "desc"`,
			})
		} else {
			params.SortOrder = raw
		}
	}

	if len(errs) > 0 {
		return storage.ListParams{}, errs
	}
	return params, nil
}
