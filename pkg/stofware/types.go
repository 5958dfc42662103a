package stofware

import (
	"net/http"
	"time"
)

// QueryOperator identifies a comparison operator understood by the
// Stofware API. Field names and operator/value compatibility are not
// validated locally; the remote service rejects what it cannot apply.
type QueryOperator string

// Comparison operators.
const (
	OpEQ            QueryOperator = "EQ"
	OpNE            QueryOperator = "NE"
	OpIS            QueryOperator = "IS"
	OpNOT           QueryOperator = "NOT"
	OpGT            QueryOperator = "GT"
	OpGE            QueryOperator = "GE"
	OpLT            QueryOperator = "LT"
	OpLTE           QueryOperator = "LTE"
	OpIN            QueryOperator = "IN"
	OpNOTIN         QueryOperator = "NOTIN"
	OpILIKE         QueryOperator = "ILIKE"
	OpJSONBContains QueryOperator = "JSONB_CONTAINS"
)

// BooleanOperator combines conditions inside a filter group.
type BooleanOperator string

// Boolean operators for filter groups.
const (
	And BooleanOperator = "AND"
	Or  BooleanOperator = "OR"
)

// QueryOrder is a sort direction. Directions are accepted
// case-insensitively and normalized to upper case.
type QueryOrder string

// Sort directions.
const (
	Asc  QueryOrder = "ASC"
	Desc QueryOrder = "DESC"
)

// AggregateFunction names a server-side aggregation.
type AggregateFunction string

// Aggregate functions supported by the aggregate endpoints.
const (
	AggMean          AggregateFunction = "mean"
	AggMedian        AggregateFunction = "median"
	AggMode          AggregateFunction = "mode"
	AggSum           AggregateFunction = "sum"
	AggCount         AggregateFunction = "count"
	AggCountDistinct AggregateFunction = "countdistinct"
	AggNUnique       AggregateFunction = "nunique"
	AggStd           AggregateFunction = "std"
	AggMin           AggregateFunction = "min"
	AggMax           AggregateFunction = "max"
)

// FilterCondition is a single comparison condition. The wire keys match
// the Stofware API vocabulary ("name", not "field").
type FilterCondition struct {
	Name     string        `json:"name"     yaml:"name"`
	Operator QueryOperator `json:"operator" yaml:"operator"`
	Value    any           `json:"value"    yaml:"value"`
}

// FilterItem is either a FilterCondition or a nested *FilterGroup.
type FilterItem interface {
	filterItem()
}

func (FilterCondition) filterItem() {}
func (*FilterGroup) filterItem()    {}

// FilterGroup combines conditions and subgroups under one boolean
// operator.
type FilterGroup struct {
	Operator BooleanOperator `json:"operator" yaml:"operator"`
	Items    []FilterItem    `json:"items"    yaml:"items"`
}

// OrderClause is a single order_by specification.
type OrderClause struct {
	Name      string     `json:"name"      yaml:"name"`
	Direction QueryOrder `json:"direction" yaml:"direction"`
}

// AggregateColumn describes one column of an aggregate call.
type AggregateColumn struct {
	Name     string            `json:"name"     yaml:"name"`
	Function AggregateFunction `json:"function" yaml:"function"`
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a stofware.Client.
//
// # Transport
//
// The HTTP exchange itself is delegated to HTTPClient. When nil, a
// plain *http.Client with HTTPTimeout applied is used. The SDK adds no
// retry, backoff, or pooling behavior of its own; cancellation and
// timeouts belong to the transport and to the context passed to
// terminal builder calls.
type Config struct {
	// BaseURL: base URL for the Stofware API
	// (e.g., "https://api.example.com/api"). Required. The value is used
	// as-is; endpoint paths are joined with exactly one separating slash.
	BaseURL string

	// Token: optional static Bearer token. It can be replaced at any time
	// via Client.SetToken, affecting all subsequent requests.
	Token string

	// HTTPClient: optional transport collaborator. Callers own its
	// timeout, TLS, and pooling configuration.
	HTTPClient *http.Client

	// HTTPTimeout: timeout applied to the default transport when
	// HTTPClient is nil. Zero means the package default.
	HTTPTimeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// Interceptors: optional request/response interceptor chain run
	// around every HTTP exchange.
	Interceptors *InterceptorChain
}
