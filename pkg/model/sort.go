package model

// SortField selects which product attribute orders the catalog.
type SortField int

const (
	SortFieldName SortField = iota
	SortFieldCategory
	SortFieldPrice
	SortFieldRating
	SortFieldStock
	SortFieldID
	NumSortFields // Sentinel: total number of sort fields
)

// String returns a human-readable label for the sort field.
func (f SortField) String() string {
	switch f {
	case SortFieldName:
		return "Name"
	case SortFieldCategory:
		return "Category"
	case SortFieldPrice:
		return "Price"
	case SortFieldRating:
		return "Rating"
	case SortFieldStock:
		return "Stock"
	case SortFieldID:
		return "ID"
	default:
		return "Unknown"
	}
}

// DefaultDirection returns the natural default direction for this field.
func (f SortField) DefaultDirection() SortDirection {
	switch f {
	case SortFieldRating:
		return SortDescending // best first
	default:
		return SortAscending
	}
}

// SortDirection represents ascending or descending sort order.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// String returns a human-readable label for the sort direction.
func (d SortDirection) String() string {
	if d == SortAscending {
		return "Ascending"
	}
	return "Descending"
}

// Indicator returns the arrow indicator for the sort direction.
func (d SortDirection) Indicator() string {
	if d == SortAscending {
		return "▲"
	}
	return "▼"
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// SortSpec pairs a field with a direction. The zero value sorts by name
// ascending.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// String renders the spec for status display, e.g. "Price ▼".
func (s SortSpec) String() string {
	return s.Field.String() + " " + s.Direction.Indicator()
}
