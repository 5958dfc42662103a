package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// Static errors for err113 compliance.
var (
	ErrInvalidFilterFlag = errors.New("filter must have the form FIELD:OPERATOR:VALUE")
	ErrInvalidColumnFlag = errors.New("column must have the form FIELD:FUNCTION")
)

// QueryOptions holds the query-shaping flags shared by read commands.
type QueryOptions struct {
	Filters    []string
	FilterJSON string
	OrderBy    string
	Page       int
	PageLimit  int
}

// AddQueryFlags registers the shared query-shaping flags on a command.
func AddQueryFlags(cmd *cobra.Command, opts *QueryOptions) {
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter condition FIELD:OPERATOR:VALUE (repeatable)")
	cmd.Flags().StringVar(&opts.FilterJSON, "filter-json", "", "pre-serialized filter group as a JSON object")
	cmd.Flags().StringVar(&opts.OrderBy, "order-by", "", "ordering FIELD or FIELD:asc / FIELD:desc")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&opts.PageLimit, "page-limit", 0, "results per page")
}

// ApplyQueryFlags maps parsed flags onto a builder's parameter set.
func ApplyQueryFlags(params *stofware.QueryParams, opts QueryOptions) error {
	for _, raw := range opts.Filters {
		name, operator, value, err := parseFilterFlag(raw)
		if err != nil {
			return err
		}

		params.WithFilter(name, operator, value)
	}

	if opts.FilterJSON != "" {
		params.SetFilterJSON(opts.FilterJSON)
	}

	if opts.OrderBy != "" {
		name, direction := parseOrderFlag(opts.OrderBy)
		params.WithOrderBy(name, direction)
	}

	if opts.Page > 0 {
		params.WithPage(opts.Page)
	}

	if opts.PageLimit > 0 {
		params.WithPageLimit(opts.PageLimit)
	}

	return params.Err()
}

// parseFilterFlag parses FIELD:OPERATOR:VALUE. The value is decoded as
// JSON when possible (numbers, booleans, arrays) and falls back to the
// raw string.
func parseFilterFlag(raw string) (string, stofware.QueryOperator, any, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, fmt.Errorf("%w: %q", ErrInvalidFilterFlag, raw)
	}

	operator := stofware.QueryOperator(strings.ToUpper(parts[1]))

	var value any
	if err := json.Unmarshal([]byte(parts[2]), &value); err != nil {
		value = parts[2]
	}

	return parts[0], operator, value, nil
}

func parseOrderFlag(raw string) (string, stofware.QueryOrder) {
	name, direction, found := strings.Cut(raw, ":")
	if !found {
		return name, stofware.Desc
	}

	return name, stofware.QueryOrder(direction)
}

// ParseColumnFlags parses repeatable FIELD:FUNCTION aggregate column
// flags.
func ParseColumnFlags(raw []string) ([]stofware.AggregateColumn, error) {
	columns := make([]stofware.AggregateColumn, 0, len(raw))

	for _, entry := range raw {
		name, function, found := strings.Cut(entry, ":")
		if !found || name == "" || function == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumnFlag, entry)
		}

		columns = append(columns, stofware.AggregateColumn{
			Name:     name,
			Function: stofware.AggregateFunction(strings.ToLower(function)),
		})
	}

	return columns, nil
}

// ParseParamFlags parses repeatable KEY=VALUE extra parameter flags,
// JSON-decoding values when possible.
func ParseParamFlags(raw []string) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	extra := make(map[string]any, len(raw))

	for _, entry := range raw {
		key, rawValue, _ := strings.Cut(entry, "=")

		var value any
		if err := json.Unmarshal([]byte(rawValue), &value); err != nil {
			value = rawValue
		}

		extra[key] = value
	}

	return extra
}
