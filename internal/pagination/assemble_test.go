package pagination_test

import (
	"errors"
	"testing"

	"github.com/taskhive/taskhive-backend/internal/pagination"
)

func TestAssemble_PackagesRows(t *testing.T) {
	req := pagination.PageRequest{Page: 2, PageSize: 10}
	rows := []string{"a", "b", "c"}
	res, err := pagination.Assemble(rows, 13, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 3 || res.TotalCount != 13 || res.Page != 2 || res.PageSize != 10 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAssemble_NilRowsBecomeEmpty(t *testing.T) {
	res, err := pagination.Assemble[string](nil, 0, pagination.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("expected non-nil empty items, got %#v", res.Items)
	}
}

func TestAssemble_TooManyRows(t *testing.T) {
	req := pagination.PageRequest{Page: 1, PageSize: 2}
	_, err := pagination.Assemble([]int{1, 2, 3}, 3, req)
	if !errors.Is(err, pagination.ErrInternalConsistency) {
		t.Fatalf("expected ErrInternalConsistency, got %v", err)
	}
}

// Mirrors the canonical end-to-end flow: raw params through Normalize, Build
// and Assemble.
func TestEndToEnd(t *testing.T) {
	c := pagination.Constraints{DefaultPageSize: 20, MaxPageSize: 50}
	req, err := pagination.Normalize(map[string]string{"page": "2", "pageSize": "10"}, c)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if req.Page != 2 || req.PageSize != 10 {
		t.Fatalf("unexpected request: %+v", req)
	}

	d := pagination.Build(req)
	if d.Offset != 10 || d.Limit != 10 {
		t.Fatalf("expected offset=10 limit=10, got %d/%d", d.Offset, d.Limit)
	}

	rows := make([]int, 10)
	res, err := pagination.Assemble(rows, 25, req)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(res.Items) != 10 || res.TotalCount != 25 || res.Page != 2 || res.PageSize != 10 {
		t.Fatalf("unexpected result: %+v", res)
	}
	// (page-1)*pageSize + len(items) never exceeds the total.
	if (res.Page-1)*res.PageSize+len(res.Items) > res.TotalCount {
		t.Fatalf("window overruns total: %+v", res)
	}
}
