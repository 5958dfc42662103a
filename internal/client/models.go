package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// modelQuery implements stofware.ModelQuery. It owns a mutable parameter
// set and is single-shot by convention: a second terminal call re-sends
// whatever parameters exist at that time.
type modelQuery struct {
	client *Client
	entity string
	params *stofware.QueryParams
}

func newModelQuery(client *Client, entity string) *modelQuery {
	return &modelQuery{
		client: client,
		entity: entity,
		params: stofware.NewQueryParams(),
	}
}

// Filter implements stofware.ModelQuery.Filter.
func (q *modelQuery) Filter(name string, operator stofware.QueryOperator, value any) stofware.ModelQuery {
	q.params.WithFilter(name, operator, value)

	return q
}

// AppendFilter implements stofware.ModelQuery.AppendFilter.
func (q *modelQuery) AppendFilter(name string, operator stofware.QueryOperator, value any, boolean stofware.BooleanOperator) stofware.ModelQuery {
	q.params.AppendFilter(name, operator, value, boolean)

	return q
}

// SetFilter implements stofware.ModelQuery.SetFilter.
func (q *modelQuery) SetFilter(group *stofware.FilterGroup) stofware.ModelQuery {
	q.params.SetFilter(group)

	return q
}

// SetFilterJSON implements stofware.ModelQuery.SetFilterJSON.
func (q *modelQuery) SetFilterJSON(raw string) stofware.ModelQuery {
	q.params.SetFilterJSON(raw)

	return q
}

// OrderBy implements stofware.ModelQuery.OrderBy.
func (q *modelQuery) OrderBy(name string, direction stofware.QueryOrder) stofware.ModelQuery {
	q.params.WithOrderBy(name, direction)

	return q
}

// Page implements stofware.ModelQuery.Page.
func (q *modelQuery) Page(num int) stofware.ModelQuery {
	q.params.WithPage(num)

	return q
}

// PageLimit implements stofware.ModelQuery.PageLimit.
func (q *modelQuery) PageLimit(limit int) stofware.ModelQuery {
	q.params.WithPageLimit(limit)

	return q
}

// Select implements stofware.ModelQuery.Select.
func (q *modelQuery) Select(fields ...string) stofware.ModelQuery {
	q.params.WithSelect(fields...)

	return q
}

// Include implements stofware.ModelQuery.Include.
func (q *modelQuery) Include(relations ...string) stofware.ModelQuery {
	q.params.WithInclude(relations...)

	return q
}

// Params implements stofware.ModelQuery.Params.
func (q *modelQuery) Params() *stofware.QueryParams {
	return q.params
}

// buildQuery surfaces deferred accumulator errors and serializes the
// parameter set, in that order, so validation failures never reach the
// network.
func (q *modelQuery) buildQuery() (url.Values, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	if err := q.params.Err(); err != nil {
		return nil, err
	}

	values, err := q.params.ToValues()
	if err != nil {
		return nil, fmt.Errorf("building query for %q: %w", q.entity, err)
	}

	return values, nil
}

// GetSingle implements stofware.ModelQuery.GetSingle.
func (q *modelQuery) GetSingle(ctx context.Context, id any) (any, error) {
	query, err := q.buildQuery()
	if err != nil {
		return nil, err
	}

	return q.client.request(ctx, http.MethodGet, fmt.Sprintf("models/%s/%v", q.entity, id), query, nil)
}

// GetAll implements stofware.ModelQuery.GetAll.
func (q *modelQuery) GetAll(ctx context.Context) (any, error) {
	query, err := q.buildQuery()
	if err != nil {
		return nil, err
	}

	return q.client.request(ctx, http.MethodGet, "models/"+q.entity, query, nil)
}

// Aggregate implements stofware.ModelQuery.Aggregate.
func (q *modelQuery) Aggregate(ctx context.Context, columns []stofware.AggregateColumn, extra map[string]any) (any, error) {
	q.params.WithColumns(columns).Merge(extra)

	query, err := q.buildQuery()
	if err != nil {
		return nil, err
	}

	return q.client.request(ctx, http.MethodGet, "aggregate/"+q.entity, query, nil)
}

// Post implements stofware.ModelQuery.Post. Query parameters are not
// sent.
func (q *modelQuery) Post(ctx context.Context, data any) (any, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	return q.client.request(ctx, http.MethodPost, "models/"+q.entity, nil, data)
}

// Put implements stofware.ModelQuery.Put.
func (q *modelQuery) Put(ctx context.Context, id, data any) (any, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	return q.client.request(ctx, http.MethodPut, fmt.Sprintf("models/%s/%v", q.entity, id), nil, data)
}

// BulkPut implements stofware.ModelQuery.BulkPut. The body must carry
// identifying keys; that contract belongs to the remote service.
func (q *modelQuery) BulkPut(ctx context.Context, data any) (any, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	return q.client.request(ctx, http.MethodPut, "models/"+q.entity, nil, data)
}

// Delete implements stofware.ModelQuery.Delete. No parameters or body
// are sent.
func (q *modelQuery) Delete(ctx context.Context, id any) (any, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	return q.client.request(ctx, http.MethodDelete, fmt.Sprintf("models/%s/%v", q.entity, id), nil, nil)
}

// BulkDelete implements stofware.ModelQuery.BulkDelete.
func (q *modelQuery) BulkDelete(ctx context.Context, data any) (any, error) {
	if q.entity == "" {
		return nil, stofware.ErrEntityNameRequired
	}

	return q.client.request(ctx, http.MethodDelete, "models/"+q.entity, nil, data)
}
