package pagination

import "sort"

// Filter is one field/value pair handed to the data layer. The value is
// already coerced to the field's declared type.
type Filter struct {
	Field string
	Value any
}

// QueryDescriptor is the instruction set the data layer consumes to fetch
// exactly one page. Filters are ordered by field name so equal requests always
// produce equal descriptors, regardless of map iteration order.
type QueryDescriptor struct {
	Offset  int
	Limit   int
	Sort    *SortSpec
	Filters []Filter
}

// Build derives the data-layer query window from a normalized request.
// Pure and deterministic, no I/O.
func Build(req PageRequest) QueryDescriptor {
	d := QueryDescriptor{
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
	}
	if req.Sort != nil {
		s := *req.Sort
		d.Sort = &s
	}
	if len(req.Filters) > 0 {
		d.Filters = make([]Filter, 0, len(req.Filters))
		for k, v := range req.Filters {
			d.Filters = append(d.Filters, Filter{Field: k, Value: v})
		}
		sort.Slice(d.Filters, func(i, j int) bool { return d.Filters[i].Field < d.Filters[j].Field })
	}
	return d
}
