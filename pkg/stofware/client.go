package stofware

import "context"

// Client is the entry point to the Stofware API. Model and View return
// fresh, independent builders referencing this client; the client itself
// owns no builder state.
type Client interface {
	// Model returns a query builder for a named entity collection.
	Model(entity string) ModelQuery
	// View returns a query builder for a named read-only view.
	View(name string) ViewQuery
	// SetToken replaces the Bearer token used by all future requests
	// from any builder derived from this client. In-flight requests are
	// unaffected.
	SetToken(token string)
	// Raw issues an arbitrary request against the API. params and data
	// each accept nil, a map, or a pre-serialized JSON object string;
	// anything else fails with an input validation error before any
	// network call.
	Raw(ctx context.Context, method, endpoint string, params, data any) (any, error)
}

// ModelQuery addresses one named entity collection with full CRUD and
// aggregate semantics. Accumulator methods mutate the builder in place
// and return the same instance, so the last call wins for scalar keys
// and a second terminal call re-sends whatever parameters exist at that
// time. Builders only grow in constraints: there are no removal
// operations.
type ModelQuery interface {
	// Filter appends a simple condition to the flat filters list.
	Filter(name string, operator QueryOperator, value any) ModelQuery
	// AppendFilter builds or extends the filter-group tree under the
	// given boolean operator.
	AppendFilter(name string, operator QueryOperator, value any, boolean BooleanOperator) ModelQuery
	// SetFilter replaces the filter-group tree wholesale.
	SetFilter(group *FilterGroup) ModelQuery
	// SetFilterJSON replaces the filter group with a pre-serialized JSON
	// object string, transmitted verbatim.
	SetFilterJSON(raw string) ModelQuery
	// OrderBy overwrites the order_by clause; empty direction defaults
	// to DESC.
	OrderBy(name string, direction QueryOrder) ModelQuery
	// Page overwrites the page number.
	Page(num int) ModelQuery
	// PageLimit overwrites the page size.
	PageLimit(limit int) ModelQuery
	// Select overwrites the projected field list.
	Select(fields ...string) ModelQuery
	// Include overwrites the eager-loaded relation list.
	Include(relations ...string) ModelQuery
	// Params exposes the accumulated parameter set.
	Params() *QueryParams

	// GetSingle fetches one resource by id with the accumulated
	// parameters.
	GetSingle(ctx context.Context, id any) (any, error)
	// GetAll fetches the collection with the accumulated parameters. The
	// payload shape (list vs. paged envelope) is defined by the remote
	// service.
	GetAll(ctx context.Context) (any, error)
	// Aggregate requests a server-side aggregation over columns; extra
	// keys are merged into the parameter set, overwriting collisions.
	Aggregate(ctx context.Context, columns []AggregateColumn, extra map[string]any) (any, error)
	// Post creates a resource. Query parameters are not sent.
	Post(ctx context.Context, data any) (any, error)
	// Put updates one resource by id.
	Put(ctx context.Context, id, data any) (any, error)
	// BulkPut updates many resources; the body must carry identifying
	// keys (a remote-service contract).
	BulkPut(ctx context.Context, data any) (any, error)
	// Delete removes one resource by id. No body is sent.
	Delete(ctx context.Context, id any) (any, error)
	// BulkDelete removes many resources identified by the body.
	BulkDelete(ctx context.Context, data any) (any, error)
}

// ViewQuery addresses one named read-only view. Views have no mutation
// operations.
type ViewQuery interface {
	Filter(name string, operator QueryOperator, value any) ViewQuery
	AppendFilter(name string, operator QueryOperator, value any, boolean BooleanOperator) ViewQuery
	SetFilter(group *FilterGroup) ViewQuery
	SetFilterJSON(raw string) ViewQuery
	OrderBy(name string, direction QueryOrder) ViewQuery
	Page(num int) ViewQuery
	PageLimit(limit int) ViewQuery
	Params() *QueryParams

	// GetAll fetches the view with the accumulated parameters.
	GetAll(ctx context.Context) (any, error)
	// Aggregate requests a server-side aggregation over the view.
	Aggregate(ctx context.Context, columns []AggregateColumn, extra map[string]any) (any, error)
}
