package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// viewQuery implements stofware.ViewQuery. Views are read-only: no
// mutation terminals exist.
type viewQuery struct {
	client *Client
	view   string
	params *stofware.QueryParams
}

func newViewQuery(client *Client, view string) *viewQuery {
	return &viewQuery{
		client: client,
		view:   view,
		params: stofware.NewQueryParams(),
	}
}

// Filter implements stofware.ViewQuery.Filter.
func (q *viewQuery) Filter(name string, operator stofware.QueryOperator, value any) stofware.ViewQuery {
	q.params.WithFilter(name, operator, value)

	return q
}

// AppendFilter implements stofware.ViewQuery.AppendFilter.
func (q *viewQuery) AppendFilter(name string, operator stofware.QueryOperator, value any, boolean stofware.BooleanOperator) stofware.ViewQuery {
	q.params.AppendFilter(name, operator, value, boolean)

	return q
}

// SetFilter implements stofware.ViewQuery.SetFilter.
func (q *viewQuery) SetFilter(group *stofware.FilterGroup) stofware.ViewQuery {
	q.params.SetFilter(group)

	return q
}

// SetFilterJSON implements stofware.ViewQuery.SetFilterJSON.
func (q *viewQuery) SetFilterJSON(raw string) stofware.ViewQuery {
	q.params.SetFilterJSON(raw)

	return q
}

// OrderBy implements stofware.ViewQuery.OrderBy.
func (q *viewQuery) OrderBy(name string, direction stofware.QueryOrder) stofware.ViewQuery {
	q.params.WithOrderBy(name, direction)

	return q
}

// Page implements stofware.ViewQuery.Page.
func (q *viewQuery) Page(num int) stofware.ViewQuery {
	q.params.WithPage(num)

	return q
}

// PageLimit implements stofware.ViewQuery.PageLimit.
func (q *viewQuery) PageLimit(limit int) stofware.ViewQuery {
	q.params.WithPageLimit(limit)

	return q
}

// Params implements stofware.ViewQuery.Params.
func (q *viewQuery) Params() *stofware.QueryParams {
	return q.params
}

func (q *viewQuery) buildQuery() (url.Values, error) {
	if q.view == "" {
		return nil, stofware.ErrViewNameRequired
	}

	if err := q.params.Err(); err != nil {
		return nil, err
	}

	values, err := q.params.ToValues()
	if err != nil {
		return nil, fmt.Errorf("building query for view %q: %w", q.view, err)
	}

	return values, nil
}

// GetAll implements stofware.ViewQuery.GetAll.
func (q *viewQuery) GetAll(ctx context.Context) (any, error) {
	query, err := q.buildQuery()
	if err != nil {
		return nil, err
	}

	return q.client.request(ctx, http.MethodGet, "views/"+q.view, query, nil)
}

// Aggregate implements stofware.ViewQuery.Aggregate.
func (q *viewQuery) Aggregate(ctx context.Context, columns []stofware.AggregateColumn, extra map[string]any) (any, error) {
	q.params.WithColumns(columns).Merge(extra)

	query, err := q.buildQuery()
	if err != nil {
		return nil, err
	}

	return q.client.request(ctx, http.MethodGet, "views/"+q.view+"/aggregate", query, nil)
}
