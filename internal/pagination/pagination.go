// Package pagination turns untrusted list-query parameters into a validated,
// deterministic query description plus a uniform result envelope. It sits
// between the HTTP boundary and the data layer and performs no I/O itself, so
// every operation here is safe to call from any number of concurrent requests.
package pagination

// Direction is the sort order applied to a single field.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// FieldType declares how a raw filter value is coerced before it reaches the
// data layer.
type FieldType int

const (
	String FieldType = iota
	Number
	Date
	Boolean
)

// SortSpec is one field plus the direction to order it by. Field must come
// from the resource allow-list; clients never extend it.
type SortSpec struct {
	Field     string
	Direction Direction
}

// Constraints are supplied per resource by the calling module. They bound what
// a client may ask for: page window size, sortable fields and filterable
// fields with their declared types.
type Constraints struct {
	DefaultPageSize     int
	MaxPageSize         int
	AllowedSortFields   []string
	AllowedFilterFields map[string]FieldType
}

// PageRequest is a normalized, validated description of one page of results a
// client wants. Build it with Normalize and treat it as immutable afterwards.
// Filter values are already coerced to their declared types (string, float64,
// time.Time or bool).
type PageRequest struct {
	Page     int
	PageSize int
	Sort     *SortSpec
	Filters  map[string]any
}

// PageResult carries one page of items plus metadata describing the full
// result set, so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}
