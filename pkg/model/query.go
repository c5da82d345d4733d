package model

import "strings"

// Query captures one expression of search intent: lowercased AND-matched
// tokens plus an optional exact-match category. Queries are value types,
// replaced wholesale on every user action.
type Query struct {
	Tokens   []string
	Category string
}

// ParseQuery builds a Query from raw input text and a category selection.
// Tokens are split on whitespace, lowercased, and empties discarded.
func ParseQuery(raw, category string) Query {
	fields := strings.Fields(strings.ToLower(raw))
	q := Query{Category: category}
	if len(fields) > 0 {
		q.Tokens = fields
	}
	return q
}

// IsEmpty reports whether the query constrains nothing, in which case
// filtering is the identity and can be short-circuited.
func (q Query) IsEmpty() bool {
	return len(q.Tokens) == 0 && q.Category == ""
}

// String renders the query for status display and logging.
func (q Query) String() string {
	var parts []string
	if len(q.Tokens) > 0 {
		parts = append(parts, strings.Join(q.Tokens, " "))
	}
	if q.Category != "" {
		parts = append(parts, "category="+q.Category)
	}
	if len(parts) == 0 {
		return "(all)"
	}
	return strings.Join(parts, " ")
}
