package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

func TestModelQuery_GetSingle(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "/api/models/users/5", request.URL.Path)
		okJSON(writer, `{"id":5,"name":"robin"}`)
	}))

	result, err := cli.Model("users").GetSingle(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(5), "name": "robin"}, result)
}

func TestModelQuery_GetSingle_StringID(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/models/users/abc-123", request.URL.Path)
		okJSON(writer, `{}`)
	}))

	_, err := cli.Model("users").GetSingle(context.Background(), "abc-123")
	require.NoError(t, err)
}

func TestModelQuery_GetAll_WithParameters(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/models/users", request.URL.Path)

		values := request.URL.Query()
		assert.JSONEq(t, `[{"name":"active","operator":"EQ","value":true}]`, values.Get("filters"))
		assert.JSONEq(t, `{"name":"created_at","direction":"DESC"}`, values.Get("order_by"))
		assert.Equal(t, "1", values.Get("page"))
		assert.Equal(t, "50", values.Get("page_limit"))
		assert.JSONEq(t, `["id","name"]`, values.Get("select"))
		assert.JSONEq(t, `["roles"]`, values.Get("include"))

		okJSON(writer, `[{"id":1}]`)
	}))

	result, err := cli.Model("users").
		Filter("active", stofware.OpEQ, true).
		OrderBy("created_at", stofware.Desc).
		Page(1).
		PageLimit(50).
		Select("id", "name").
		Include("roles").
		GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": float64(1)}}, result)
}

func TestModelQuery_Aggregate(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/aggregate/orders", request.URL.Path)

		values := request.URL.Query()
		assert.JSONEq(t, `[{"name":"amount","function":"sum"},{"name":"id","function":"count"}]`, values.Get("columns"))
		// Extra params merge into the query verbatim.
		assert.Equal(t, "month", values.Get("group_by"))

		okJSON(writer, `{"amount":1200}`)
	}))

	result, err := cli.Model("orders").Aggregate(context.Background(), []stofware.AggregateColumn{
		{Name: "amount", Function: stofware.AggSum},
		{Name: "id", Function: stofware.AggCount},
	}, map[string]any{"group_by": "month"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"amount": float64(1200)}, result)
}

func TestModelQuery_Post(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/api/models/users", request.URL.Path)
		// Accumulated query parameters are not sent on writes.
		assert.Empty(t, request.URL.RawQuery)

		var body map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "robin", body["name"])

		okJSON(writer, `{"id":10,"name":"robin"}`)
	}))

	builder := cli.Model("users")
	builder.Filter("ignored", stofware.OpEQ, 1)

	result, err := builder.Post(context.Background(), map[string]any{"name": "robin"})
	require.NoError(t, err)
	assert.Equal(t, float64(10), result.(map[string]any)["id"])
}

func TestModelQuery_Put(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PUT", request.Method)
		assert.Equal(t, "/api/models/users/5", request.URL.Path)

		var body map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "renamed", body["name"])

		okJSON(writer, `{"id":5,"name":"renamed"}`)
	}))

	_, err := cli.Model("users").Put(context.Background(), 5, map[string]any{"name": "renamed"})
	require.NoError(t, err)
}

func TestModelQuery_BulkPut(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PUT", request.Method)
		// No id segment: the body carries identifying keys.
		assert.Equal(t, "/api/models/users", request.URL.Path)
		okJSON(writer, `{"updated":2}`)
	}))

	_, err := cli.Model("users").BulkPut(context.Background(), map[string]any{
		"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
	})
	require.NoError(t, err)
}

func TestModelQuery_Delete(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, "/api/models/users/5", request.URL.Path)
		assert.Empty(t, request.URL.RawQuery)

		body, _ := io.ReadAll(request.Body)
		assert.Empty(t, body)

		okJSON(writer, `{"deleted":true}`)
	}))

	_, err := cli.Model("users").Delete(context.Background(), 5)
	require.NoError(t, err)
}

func TestModelQuery_BulkDelete(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, "/api/models/users", request.URL.Path)

		var body map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []any{float64(1), float64(2)}, body["ids"])

		okJSON(writer, `{"deleted":2}`)
	}))

	_, err := cli.Model("users").BulkDelete(context.Background(), map[string]any{"ids": []int{1, 2}})
	require.NoError(t, err)
}

func TestModelQuery_DeferredValidationError(t *testing.T) {
	t.Parallel()

	requests := 0
	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		okJSON(writer, `{}`)
	}))

	_, err := cli.Model("users").SetFilterJSON("[1,2]").GetAll(context.Background())
	require.Error(t, err)
	assert.True(t, stofware.IsInputError(err))
	assert.Zero(t, requests)
}

func TestModelQuery_EmptyEntityName(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		okJSON(writer, `{}`)
	}))

	_, err := cli.Model("").GetAll(context.Background())
	require.ErrorIs(t, err, stofware.ErrEntityNameRequired)

	_, err = cli.Model("").Post(context.Background(), map[string]any{})
	require.ErrorIs(t, err, stofware.ErrEntityNameRequired)
}

func TestModelQuery_SecondTerminalCallResends(t *testing.T) {
	t.Parallel()

	var queries []string

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		queries = append(queries, request.URL.Query().Get("page"))
		okJSON(writer, `[]`)
	}))

	builder := cli.Model("users").Page(1)

	_, err := builder.GetAll(context.Background())
	require.NoError(t, err)

	// The builder keeps mutating; a second terminal call sends the
	// current state.
	builder.Page(2)

	_, err = builder.GetAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, queries)
}

func TestModelQuery_FreshBuildersAreIndependent(t *testing.T) {
	t.Parallel()

	cli, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		okJSON(writer, `[]`)
	}))

	first := cli.Model("users").Page(3)
	second := cli.Model("users")

	assert.Equal(t, 3, first.Params().Page)
	assert.Zero(t, second.Params().Page)
}
