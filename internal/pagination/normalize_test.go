package pagination_test

import (
	"errors"
	"testing"
	"time"

	"github.com/taskhive/taskhive-backend/internal/pagination"
)

func taskConstraints() pagination.Constraints {
	return pagination.Constraints{
		DefaultPageSize:   20,
		MaxPageSize:       100,
		AllowedSortFields: []string{"id", "title", "priority", "due_date", "created_at"},
		AllowedFilterFields: map[string]pagination.FieldType{
			"status":     pagination.String,
			"priority":   pagination.Number,
			"done":       pagination.Boolean,
			"due_before": pagination.Date,
		},
	}
}

func TestNormalize_Defaults(t *testing.T) {
	req, err := pagination.Normalize(map[string]string{}, taskConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page != 1 || req.PageSize != 20 {
		t.Fatalf("expected page=1 pageSize=20, got %d/%d", req.Page, req.PageSize)
	}
	if req.Sort != nil || req.Filters != nil {
		t.Fatalf("expected no sort and no filters, got %+v", req)
	}
}

func TestNormalize_InvalidPage(t *testing.T) {
	cases := []string{"0", "-3", "abc", "1.5", ""}
	for _, raw := range cases {
		t.Run("page="+raw, func(t *testing.T) {
			_, err := pagination.Normalize(map[string]string{"page": raw}, taskConstraints())
			if !errors.Is(err, pagination.ErrInvalidPage) {
				t.Fatalf("expected ErrInvalidPage, got %v", err)
			}
			if !errors.Is(err, pagination.ErrInvalidQuery) {
				t.Fatalf("expected error to unwrap to ErrInvalidQuery, got %v", err)
			}
			ve, ok := pagination.AsValidation(err)
			if !ok || ve.Field != "page" || ve.Value != raw {
				t.Fatalf("expected diagnostic for page/%q, got %+v", raw, ve)
			}
		})
	}
}

func TestNormalize_PageOffsetOverflow(t *testing.T) {
	// A page this large would wrap (page-1)*pageSize negative.
	raw := map[string]string{"page": "922337203685477580", "pageSize": "100"}
	_, err := pagination.Normalize(raw, taskConstraints())
	if !errors.Is(err, pagination.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	ve, ok := pagination.AsValidation(err)
	if !ok || ve.Field != "page" {
		t.Fatalf("expected diagnostic naming page, got %+v", ve)
	}

	// The largest page whose offset still fits must pass and keep the
	// derived window non-negative.
	raw["page"] = "92233720368547759"
	req, err := pagination.Normalize(raw, taskConstraints())
	if err != nil {
		t.Fatalf("unexpected error at the representable boundary: %v", err)
	}
	if d := pagination.Build(req); d.Offset < 0 {
		t.Fatalf("offset went negative: %+v", d)
	}
}

func TestNormalize_InvalidPageSize(t *testing.T) {
	for _, raw := range []string{"0", "-1", "ten"} {
		_, err := pagination.Normalize(map[string]string{"pageSize": raw}, taskConstraints())
		if !errors.Is(err, pagination.ErrInvalidPageSize) {
			t.Fatalf("pageSize=%q: expected ErrInvalidPageSize, got %v", raw, err)
		}
	}
}

func TestNormalize_PageSizeClamped(t *testing.T) {
	req, err := pagination.Normalize(map[string]string{"pageSize": "10000"}, taskConstraints())
	if err != nil {
		t.Fatalf("clamping must not error: %v", err)
	}
	if req.PageSize != 100 {
		t.Fatalf("expected pageSize clamped to 100, got %d", req.PageSize)
	}
}

func TestNormalize_SortField(t *testing.T) {
	req, err := pagination.Normalize(map[string]string{"sortField": "priority"}, taskConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Sort == nil || req.Sort.Field != "priority" || req.Sort.Direction != pagination.Asc {
		t.Fatalf("expected priority ASC, got %+v", req.Sort)
	}

	_, err = pagination.Normalize(map[string]string{"sortField": "password"}, taskConstraints())
	if !errors.Is(err, pagination.ErrInvalidSortField) {
		t.Fatalf("expected ErrInvalidSortField, got %v", err)
	}
	ve, ok := pagination.AsValidation(err)
	if !ok || ve.Value != "password" {
		t.Fatalf("expected error to name raw value password, got %+v", ve)
	}
}

func TestNormalize_SortDirection(t *testing.T) {
	for raw, want := range map[string]pagination.Direction{
		"desc": pagination.Desc,
		"DESC": pagination.Desc,
		"Asc":  pagination.Asc,
	} {
		req, err := pagination.Normalize(
			map[string]string{"sortField": "id", "sortDirection": raw}, taskConstraints())
		if err != nil {
			t.Fatalf("direction %q: unexpected error: %v", raw, err)
		}
		if req.Sort.Direction != want {
			t.Fatalf("direction %q: expected %s, got %s", raw, want, req.Sort.Direction)
		}
	}

	_, err := pagination.Normalize(
		map[string]string{"sortField": "id", "sortDirection": "sideways"}, taskConstraints())
	if !errors.Is(err, pagination.ErrInvalidSortDirection) {
		t.Fatalf("expected ErrInvalidSortDirection, got %v", err)
	}
}

func TestNormalize_Filters(t *testing.T) {
	req, err := pagination.Normalize(map[string]string{
		"status":     "pending",
		"priority":   "3",
		"done":       "false",
		"due_before": "2026-09-01",
	}, taskConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Filters["status"] != "pending" {
		t.Fatalf("status filter: %v", req.Filters["status"])
	}
	if req.Filters["priority"] != float64(3) {
		t.Fatalf("priority filter should coerce to float64, got %T", req.Filters["priority"])
	}
	if req.Filters["done"] != false {
		t.Fatalf("done filter: %v", req.Filters["done"])
	}
	due, ok := req.Filters["due_before"].(time.Time)
	if !ok || due.Year() != 2026 || due.Month() != time.September {
		t.Fatalf("due_before filter: %v", req.Filters["due_before"])
	}
}

func TestNormalize_UnknownFilterField(t *testing.T) {
	_, err := pagination.Normalize(map[string]string{"owner": "alice"}, taskConstraints())
	if !errors.Is(err, pagination.ErrInvalidFilterField) {
		t.Fatalf("expected ErrInvalidFilterField, got %v", err)
	}
	ve, _ := pagination.AsValidation(err)
	if ve.Field != "owner" {
		t.Fatalf("expected error to name field owner, got %+v", ve)
	}
}

func TestNormalize_FilterCoercionFailure(t *testing.T) {
	_, err := pagination.Normalize(map[string]string{"priority": "abc"}, taskConstraints())
	if !errors.Is(err, pagination.ErrInvalidFilterValue) {
		t.Fatalf("expected ErrInvalidFilterValue, got %v", err)
	}
	ve, ok := pagination.AsValidation(err)
	if !ok || ve.Field != "priority" || ve.Value != "abc" {
		t.Fatalf("expected diagnostic naming priority/abc, got %+v", ve)
	}
}

func TestNormalize_AtomicFailure(t *testing.T) {
	// Valid page alongside an invalid filter: nothing partial comes back.
	req, err := pagination.Normalize(map[string]string{
		"page":     "2",
		"priority": "abc",
	}, taskConstraints())
	if err == nil {
		t.Fatalf("expected error")
	}
	if req.Page != 0 || req.PageSize != 0 || req.Filters != nil {
		t.Fatalf("expected zero PageRequest on failure, got %+v", req)
	}
}
