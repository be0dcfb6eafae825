package pagination

import "fmt"

// Assemble packages rows fetched by the data layer with echoed paging
// metadata. It trusts upstream validation and only guards the one contract the
// data layer must keep: never return more rows than the page asked for. A
// violation is a bug in the data layer, not in client input, and surfaces as
// ErrInternalConsistency.
func Assemble[T any](rows []T, totalCount int, req PageRequest) (PageResult[T], error) {
	if len(rows) > req.PageSize {
		return PageResult[T]{}, fmt.Errorf("%w: %d rows for page size %d",
			ErrInternalConsistency, len(rows), req.PageSize)
	}
	items := rows
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}
