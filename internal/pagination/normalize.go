package pagination

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Reserved parameter names. Everything else in the raw mapping is treated as
// a filter key.
const (
	paramPage          = "page"
	paramPageSize      = "pageSize"
	paramSortField     = "sortField"
	paramSortDirection = "sortDirection"
)

const dateLayout = "2006-01-02"

const (
	fallbackDefaultPageSize = 20
	fallbackMaxPageSize     = 100
)

// Normalize parses and validates raw query parameters against the resource
// constraints. It fails atomically: on any error the returned PageRequest is
// the zero value, and the error names the offending field and raw value.
//
// Absent page and pageSize fall back to 1 and the configured default. A value
// that is present but non-numeric or non-positive is rejected, while a
// pageSize above the maximum is clamped rather than rejected so oversized
// requests stay servable.
func Normalize(raw map[string]string, c Constraints) (PageRequest, error) {
	defSize := c.DefaultPageSize
	if defSize <= 0 {
		defSize = fallbackDefaultPageSize
	}
	maxSize := c.MaxPageSize
	if maxSize <= 0 {
		maxSize = fallbackMaxPageSize
	}

	page := 1
	if v, ok := raw[paramPage]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return PageRequest{}, newValidationError(ErrInvalidPage, paramPage, v)
		}
		page = n
	}

	size := defSize
	if v, ok := raw[paramPageSize]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return PageRequest{}, newValidationError(ErrInvalidPageSize, paramPageSize, v)
		}
		size = n
	}
	if size > maxSize {
		size = maxSize
	}
	// The data-layer offset is (page-1)*size; a page large enough to
	// overflow it would turn into a negative window. Reject it like any
	// other unusable page value.
	if page > math.MaxInt/size+1 {
		return PageRequest{}, newValidationError(ErrInvalidPage, paramPage, raw[paramPage])
	}

	var sort *SortSpec
	if v, ok := raw[paramSortField]; ok {
		if !slices.Contains(c.AllowedSortFields, v) {
			return PageRequest{}, newValidationError(ErrInvalidSortField, paramSortField, v)
		}
		sort = &SortSpec{Field: v, Direction: Asc}
	}
	if v, ok := raw[paramSortDirection]; ok {
		dir, ok := parseDirection(v)
		if !ok {
			return PageRequest{}, newValidationError(ErrInvalidSortDirection, paramSortDirection, v)
		}
		// A direction without a sort field is validated but has nothing to
		// apply to.
		if sort != nil {
			sort.Direction = dir
		}
	}

	var filters map[string]any
	for k, v := range raw {
		if k == paramPage || k == paramPageSize || k == paramSortField || k == paramSortDirection {
			continue
		}
		ft, ok := c.AllowedFilterFields[k]
		if !ok {
			return PageRequest{}, newValidationError(ErrInvalidFilterField, k, v)
		}
		coerced, ok := coerce(v, ft)
		if !ok {
			return PageRequest{}, newValidationError(ErrInvalidFilterValue, k, v)
		}
		if filters == nil {
			filters = make(map[string]any)
		}
		filters[k] = coerced
	}

	return PageRequest{Page: page, PageSize: size, Sort: sort, Filters: filters}, nil
}

func parseDirection(v string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", string(Asc):
		return Asc, true
	case string(Desc):
		return Desc, true
	default:
		return "", false
	}
}

// coerce converts a raw string into the filter field's declared type.
func coerce(v string, ft FieldType) (any, bool) {
	switch ft {
	case String:
		return v, true
	case Number:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case Date:
		s := strings.TrimSpace(v)
		if t, err := time.Parse(dateLayout, s); err == nil {
			return t, true
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, false
		}
		return t, true
	case Boolean:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return nil, false
	}
}
