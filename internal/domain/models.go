package domain

import (
	"fmt"
	"strings"
	"time"
)

// SortField is a sortable column of the result table
type SortField string

const (
	SortStars SortField = "stars"
	SortForks SortField = "forks"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FirstPage is the lowest page number the search API accepts
const FirstPage = 1

// DefaultPerPage is the page size used until the user picks another
const DefaultPerPage = 10

// MaxPerPage is the largest page size the search API accepts
const MaxPerPage = 100

// ParseSortField parses a sort field name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortStars, SortForks:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want stars or forks)", s)
	}
}

// ParseSortOrder parses a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAsc, OrderDesc:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
	}
}

// Flip returns the opposite order
func (o SortOrder) Flip() SortOrder {
	if o == OrderDesc {
		return OrderAsc
	}
	return OrderDesc
}

// Arrow returns the indicator shown next to a sorted column
func (o SortOrder) Arrow() string {
	if o == OrderAsc {
		return "▲"
	}
	return "▼"
}

// SortSpec is the active sort of the result table
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSort sorts by stars, most first
func DefaultSort() SortSpec {
	return SortSpec{Field: SortStars, Order: OrderDesc}
}

// Select returns the sort spec after the user activates field: the same field
// flips its order, another field starts descending.
func (s SortSpec) Select(field SortField) SortSpec {
	if s.Field == field {
		return SortSpec{Field: field, Order: s.Order.Flip()}
	}
	return SortSpec{Field: field, Order: OrderDesc}
}

func (s SortSpec) String() string {
	return fmt.Sprintf("%s %s", s.Field, s.Order)
}

// Query describes one search request. Sort and Order are empty for a
// keyword-only query, which leaves ordering to the API's best match.
type Query struct {
	Keyword string
	Sort    SortField
	Order   SortOrder
	Page    int
	PerPage int
}

// NewQuery creates a keyword-only query for the first page
func NewQuery(keyword string) Query {
	return Query{Keyword: keyword, Page: FirstPage, PerPage: DefaultPerPage}
}

// NewSortedQuery creates a fully specified query
func NewSortedQuery(keyword string, sort SortSpec, page, perPage int) Query {
	return Query{
		Keyword: keyword,
		Sort:    sort.Field,
		Order:   sort.Order,
		Page:    page,
		PerPage: perPage,
	}
}

// Sorted reports whether the query carries an explicit sort
func (q Query) Sorted() bool {
	return q.Sort != ""
}

// Repository is one search hit
type Repository struct {
	FullName    string
	Owner       string
	Name        string
	Description string
	HTMLURL     string
	Language    string
	Stars       int
	Forks       int
	OpenIssues  int
	Topics      []string
	Archived    bool
	UpdatedAt   time.Time
}

// Suggestion is one autosuggest entry
type Suggestion struct {
	Text        string
	Description string
	Stars       int
}

// ResultPage is one page of search hits as returned by the data source
type ResultPage struct {
	TotalCount int
	Items      []Repository
}

// ResultEnvelope carries the outcome of one search fetch
type ResultEnvelope struct {
	Success    bool
	Message    string
	Data       []Repository
	Query      Query
	TotalCount int
}

// Succeeded wraps a fetched page
func Succeeded(q Query, page ResultPage) ResultEnvelope {
	return ResultEnvelope{
		Success:    true,
		Data:       page.Items,
		Query:      q,
		TotalCount: page.TotalCount,
	}
}

// Failed wraps a fetch failure; Data is always empty
func Failed(q Query, message string) ResultEnvelope {
	return ResultEnvelope{
		Success: false,
		Message: message,
		Data:    []Repository{},
		Query:   q,
	}
}
