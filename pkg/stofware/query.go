package stofware

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParams accumulates query-shaping intent for model and view
// queries. It is a mutable builder: each method mutates the receiver and
// returns it, so the last call wins for scalar keys and sequence keys
// grow in call order. Nothing is validated against the remote schema.
type QueryParams struct {
	// Filters is the flat, implicitly ANDed condition list ("filters").
	Filters []FilterCondition
	// Filter is the structured filter-group tree ("filter").
	Filter *FilterGroup
	// RawFilter holds a caller-supplied, pre-serialized filter group. It
	// is transmitted verbatim and takes precedence over Filter.
	RawFilter string
	// Order is the single order_by clause; each call overwrites it.
	Order *OrderClause
	// Page and PageLimit are the pagination scalars.
	Page      int
	PageLimit int
	// Select and Include are model-query projections.
	Select  []string
	Include []string
	// Columns is the aggregation specification.
	Columns []AggregateColumn
	// Extra holds verbatim additional keys; they overwrite colliding
	// built-in keys at serialization time.
	Extra map[string]any

	err error
}

// NewQueryParams creates an empty parameter set.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// Err returns the first input validation error recorded by an
// accumulator call, if any. Terminal builder operations surface it
// before issuing any network call.
func (q *QueryParams) Err() error {
	return q.err
}

func (q *QueryParams) setErr(err error) {
	if q.err == nil {
		q.err = err
	}
}

// WithFilter appends a simple condition to the flat filters list.
func (q *QueryParams) WithFilter(name string, operator QueryOperator, value any) *QueryParams {
	q.Filters = append(q.Filters, FilterCondition{Name: name, Operator: operator, Value: value})

	return q
}

// AppendFilter builds or extends the filter-group tree. A condition with
// the same boolean operator as the current group joins its items; a
// condition with a different operator becomes the first item of a new
// outer group that nests the previous group as its second item.
func (q *QueryParams) AppendFilter(name string, operator QueryOperator, value any, boolean BooleanOperator) *QueryParams {
	if q.RawFilter != "" {
		q.setErr(&InputError{Name: "filter_group", Err: ErrFilterSetFromJSON})

		return q
	}

	condition := FilterCondition{Name: name, Operator: operator, Value: value}

	switch {
	case q.Filter == nil:
		q.Filter = &FilterGroup{Operator: boolean, Items: []FilterItem{condition}}
	case q.Filter.Operator == boolean:
		q.Filter.Items = append(q.Filter.Items, condition)
	default:
		q.Filter = &FilterGroup{Operator: boolean, Items: []FilterItem{condition, q.Filter}}
	}

	return q
}

// SetFilter replaces the filter-group tree wholesale.
func (q *QueryParams) SetFilter(group *FilterGroup) *QueryParams {
	if group == nil {
		q.setErr(&InputError{Name: "filter_group", Err: ErrNilFilterGroup})

		return q
	}

	q.Filter = group
	q.RawFilter = ""

	return q
}

// SetFilterJSON replaces the filter group with a pre-serialized JSON
// string. The string must parse to a JSON object; it is stored and
// transmitted verbatim, never re-serialized.
func (q *QueryParams) SetFilterJSON(raw string) *QueryParams {
	var parsed any

	err := json.Unmarshal([]byte(raw), &parsed)
	if err != nil {
		q.setErr(&InputError{Name: "filter_group", Err: fmt.Errorf("invalid JSON string: %w", err)})

		return q
	}

	if _, ok := parsed.(map[string]any); !ok {
		q.setErr(&InputError{Name: "filter_group", Err: ErrFilterNotObject})

		return q
	}

	q.RawFilter = raw
	q.Filter = nil

	return q
}

// WithOrderBy overwrites the order_by clause. Direction is accepted
// case-insensitively; empty defaults to DESC.
func (q *QueryParams) WithOrderBy(name string, direction QueryOrder) *QueryParams {
	if direction == "" {
		direction = Desc
	}

	q.Order = &OrderClause{Name: name, Direction: QueryOrder(strings.ToUpper(string(direction)))}

	return q
}

// WithPage overwrites the page number.
func (q *QueryParams) WithPage(num int) *QueryParams {
	q.Page = num

	return q
}

// WithPageLimit overwrites the page size.
func (q *QueryParams) WithPageLimit(limit int) *QueryParams {
	q.PageLimit = limit

	return q
}

// WithSelect overwrites the projected field list.
func (q *QueryParams) WithSelect(fields ...string) *QueryParams {
	q.Select = fields

	return q
}

// WithInclude overwrites the eager-loaded relation list.
func (q *QueryParams) WithInclude(relations ...string) *QueryParams {
	q.Include = relations

	return q
}

// WithColumns overwrites the aggregation specification.
func (q *QueryParams) WithColumns(columns []AggregateColumn) *QueryParams {
	q.Columns = columns

	return q
}

// Merge copies extra keys into the parameter set, shallowly overwriting
// collisions (including built-in keys such as "page").
func (q *QueryParams) Merge(extra map[string]any) *QueryParams {
	if len(extra) == 0 {
		return q
	}

	if q.Extra == nil {
		q.Extra = make(map[string]any, len(extra))
	}

	for key, value := range extra {
		q.Extra[key] = value
	}

	return q
}

// ToValues serializes the parameter set for the query string. The remote
// service expects scalar query values, so sequence- and object-valued
// entries are converted to their JSON string form.
func (q *QueryParams) ToValues() (url.Values, error) {
	values := url.Values{}

	if len(q.Filters) > 0 {
		encoded, err := encodeQueryValue(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("encoding filters: %w", err)
		}

		values.Set("filters", encoded)
	}

	switch {
	case q.RawFilter != "":
		values.Set("filter", q.RawFilter)
	case q.Filter != nil:
		encoded, err := encodeQueryValue(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("encoding filter group: %w", err)
		}

		values.Set("filter", encoded)
	}

	if q.Order != nil {
		encoded, err := encodeQueryValue(q.Order)
		if err != nil {
			return nil, fmt.Errorf("encoding order_by: %w", err)
		}

		values.Set("order_by", encoded)
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PageLimit > 0 {
		values.Set("page_limit", strconv.Itoa(q.PageLimit))
	}

	if len(q.Select) > 0 {
		encoded, err := encodeQueryValue(q.Select)
		if err != nil {
			return nil, fmt.Errorf("encoding select: %w", err)
		}

		values.Set("select", encoded)
	}

	if len(q.Include) > 0 {
		encoded, err := encodeQueryValue(q.Include)
		if err != nil {
			return nil, fmt.Errorf("encoding include: %w", err)
		}

		values.Set("include", encoded)
	}

	if len(q.Columns) > 0 {
		encoded, err := encodeQueryValue(q.Columns)
		if err != nil {
			return nil, fmt.Errorf("encoding columns: %w", err)
		}

		values.Set("columns", encoded)
	}

	for key, value := range q.Extra {
		encoded, err := encodeQueryValue(value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}

		values.Set(key, encoded)
	}

	return values, nil
}

// encodeQueryValue renders a query value as a scalar string. Strings
// pass through unquoted; everything else takes its JSON form.
func encodeQueryValue(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshaling query value: %w", err)
	}

	return string(encoded), nil
}
