package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

func TestParseFilterFlag(t *testing.T) {
	name, operator, value, err := parseFilterFlag("status:eq:active")
	require.NoError(t, err)
	assert.Equal(t, "status", name)
	assert.Equal(t, stofware.OpEQ, operator)
	assert.Equal(t, "active", value)

	// Numeric and array values decode as JSON
	_, _, value, err = parseFilterFlag("priority:GT:3")
	require.NoError(t, err)
	assert.Equal(t, float64(3), value)

	_, _, value, err = parseFilterFlag("id:IN:[1,2,3]")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, value)

	// Malformed flags are rejected
	_, _, _, err = parseFilterFlag("status:eq")
	require.ErrorIs(t, err, ErrInvalidFilterFlag)

	_, _, _, err = parseFilterFlag(":eq:active")
	require.ErrorIs(t, err, ErrInvalidFilterFlag)
}

func TestParseOrderFlag(t *testing.T) {
	name, direction := parseOrderFlag("created_at")
	assert.Equal(t, "created_at", name)
	assert.Equal(t, stofware.Desc, direction)

	name, direction = parseOrderFlag("name:asc")
	assert.Equal(t, "name", name)
	assert.Equal(t, stofware.QueryOrder("asc"), direction)
}

func TestParseColumnFlags(t *testing.T) {
	columns, err := ParseColumnFlags([]string{"total:sum", "id:COUNT"})
	require.NoError(t, err)
	assert.Equal(t, []stofware.AggregateColumn{
		{Name: "total", Function: stofware.AggSum},
		{Name: "id", Function: stofware.AggCount},
	}, columns)

	_, err = ParseColumnFlags([]string{"total"})
	require.ErrorIs(t, err, ErrInvalidColumnFlag)
}

func TestParseParamFlags(t *testing.T) {
	assert.Nil(t, ParseParamFlags(nil))

	extra := ParseParamFlags([]string{"group_by=region", "limit=10", `tags=["a","b"]`})
	assert.Equal(t, map[string]any{
		"group_by": "region",
		"limit":    float64(10),
		"tags":     []any{"a", "b"},
	}, extra)
}

func TestApplyQueryFlags(t *testing.T) {
	params := stofware.NewQueryParams()

	err := ApplyQueryFlags(params, QueryOptions{
		Filters:   []string{"status:eq:active", "priority:gt:3"},
		OrderBy:   "created_at:asc",
		Page:      2,
		PageLimit: 25,
	})
	require.NoError(t, err)

	assert.Len(t, params.Filters, 2)
	assert.Equal(t, stofware.OpGT, params.Filters[1].Operator)
	require.NotNil(t, params.Order)
	assert.Equal(t, stofware.Asc, params.Order.Direction)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 25, params.PageLimit)
}

func TestApplyQueryFlags_FilterJSON(t *testing.T) {
	params := stofware.NewQueryParams()

	err := ApplyQueryFlags(params, QueryOptions{
		FilterJSON: `{"operator":"AND","items":[]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"operator":"AND","items":[]}`, params.RawFilter)

	// Invalid raw filters surface through the builder error
	params = stofware.NewQueryParams()

	err = ApplyQueryFlags(params, QueryOptions{FilterJSON: `[1,2]`})
	require.ErrorIs(t, err, stofware.ErrFilterNotObject)
}
