//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
	"github.com/stofloos/stofware-client-go/pkg/swclient"
)

// fakeStofware is an in-process stand-in for the remote API. It keeps
// records per entity in memory and answers the same paths the real
// service exposes.
type fakeStofware struct {
	mu      sync.Mutex
	records map[string][]map[string]any
	nextID  int
}

func newFakeStofware() *fakeStofware {
	return &fakeStofware{
		records: make(map[string][]map[string]any),
		nextID:  1,
	}
}

func (f *fakeStofware) handler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if request.Header.Get("Authorization") == "" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"missing token"}`))

			return
		}

		parts := strings.Split(strings.Trim(request.URL.Path, "/"), "/")

		switch {
		case parts[0] == "models" && len(parts) == 2:
			f.handleCollection(t, writer, request, parts[1])
		case parts[0] == "models" && len(parts) == 3:
			f.handleResource(t, writer, request, parts[1], parts[2])
		case parts[0] == "aggregate" && len(parts) == 2:
			f.handleAggregate(writer, request, parts[1])
		case parts[0] == "views":
			f.handleView(writer, request)
		default:
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`not found`))
		}
	})
}

func (f *fakeStofware) handleCollection(t *testing.T, writer http.ResponseWriter, request *http.Request, entity string) {
	t.Helper()

	switch request.Method {
	case http.MethodGet:
		rows := f.records[entity]

		// Honor flat EQ filters so list assertions are meaningful.
		if rawFilters := request.URL.Query().Get("filters"); rawFilters != "" {
			var conditions []map[string]any

			require.NoError(t, json.Unmarshal([]byte(rawFilters), &conditions))

			rows = filterRows(rows, conditions)
		}

		writeJSON(writer, rows)
	case http.MethodPost:
		var body map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		body["id"] = float64(f.nextID)
		f.nextID++
		f.records[entity] = append(f.records[entity], body)

		writeJSON(writer, body)
	case http.MethodPut:
		var body map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		writeJSON(writer, body)
	case http.MethodDelete:
		writeJSON(writer, map[string]any{"deleted": true})
	}
}

func (f *fakeStofware) handleResource(t *testing.T, writer http.ResponseWriter, request *http.Request, entity, id string) {
	t.Helper()

	for index, row := range f.records[entity] {
		encoded, err := json.Marshal(row["id"])
		require.NoError(t, err)

		if string(encoded) != id {
			continue
		}

		switch request.Method {
		case http.MethodGet:
			writeJSON(writer, row)
		case http.MethodPut:
			var body map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

			for key, value := range body {
				row[key] = value
			}

			writeJSON(writer, row)
		case http.MethodDelete:
			f.records[entity] = append(f.records[entity][:index], f.records[entity][index+1:]...)
			writeJSON(writer, map[string]any{"deleted": true})
		}

		return
	}

	writer.WriteHeader(http.StatusNotFound)
	_, _ = writer.Write([]byte(`no such record`))
}

func (f *fakeStofware) handleAggregate(writer http.ResponseWriter, request *http.Request, entity string) {
	writeJSON(writer, map[string]any{
		"entity":  entity,
		"count":   len(f.records[entity]),
		"columns": request.URL.Query().Get("columns"),
	})
}

func (f *fakeStofware) handleView(writer http.ResponseWriter, request *http.Request) {
	if strings.HasSuffix(request.URL.Path, "/aggregate") {
		writeJSON(writer, map[string]any{"rows": float64(2)})

		return
	}

	writeJSON(writer, []map[string]any{
		{"month": "2026-07", "total": 10},
		{"month": "2026-08", "total": 12},
	})
}

func filterRows(rows []map[string]any, conditions []map[string]any) []map[string]any {
	matched := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		keep := true

		for _, condition := range conditions {
			if condition["operator"] != "EQ" {
				continue
			}

			name, _ := condition["name"].(string)
			if row[name] != condition["value"] {
				keep = false

				break
			}
		}

		if keep {
			matched = append(matched, row)
		}
	}

	return matched
}

func writeJSON(writer http.ResponseWriter, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(payload)
}

func TestWorkflow_ModelLifecycle(t *testing.T) {
	t.Parallel()

	fake := newFakeStofware()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client, err := swclient.NewWithToken(server.URL, "integration-token")
	require.NoError(t, err)

	ctx := context.Background()

	// 1. Create two records
	created, err := client.Model("orders").Post(ctx, map[string]any{"status": "open", "total": 10})
	require.NoError(t, err)

	createdMap, ok := created.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), createdMap["id"])

	_, err = client.Model("orders").Post(ctx, map[string]any{"status": "closed", "total": 5})
	require.NoError(t, err)

	// 2. List with a flat filter; only the open order comes back
	open, err := client.Model("orders").
		Filter("status", stofware.OpEQ, "open").
		OrderBy("total", stofware.Asc).
		GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	// 3. Fetch it by id
	single, err := client.Model("orders").GetSingle(ctx, 1)
	require.NoError(t, err)

	singleMap, ok := single.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "open", singleMap["status"])

	// 4. Update it
	updated, err := client.Model("orders").Put(ctx, 1, map[string]any{"status": "shipped"})
	require.NoError(t, err)

	updatedMap, ok := updated.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "shipped", updatedMap["status"])

	// 5. Aggregate over the collection
	stats, err := client.Model("orders").Aggregate(ctx, []stofware.AggregateColumn{
		{Name: "total", Function: stofware.AggSum},
	}, map[string]any{"group_by": "status"})
	require.NoError(t, err)

	statsMap, ok := stats.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), statsMap["count"])
	assert.JSONEq(t, `[{"name":"total","function":"sum"}]`, statsMap["columns"].(string))

	// 6. Delete and confirm the follow-up fetch fails with a 404
	_, err = client.Model("orders").Delete(ctx, 1)
	require.NoError(t, err)

	_, err = client.Model("orders").GetSingle(ctx, 1)
	require.Error(t, err)
	assert.True(t, stofware.IsNotFound(err))
}

func TestWorkflow_ViewsAndTokenRotation(t *testing.T) {
	t.Parallel()

	fake := newFakeStofware()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	ctx := context.Background()

	// Without a token the fake rejects the request.
	unauthenticated, err := swclient.NewWithEndpoint(server.URL)
	require.NoError(t, err)

	_, err = unauthenticated.View("monthly_report").GetAll(ctx)
	require.Error(t, err)
	assert.True(t, stofware.IsUnauthorized(err))

	// Rotating the token on the same client fixes all future requests.
	unauthenticated.SetToken("rotated")

	report, err := unauthenticated.View("monthly_report").
		AppendFilter("total", stofware.OpGT, 5, stofware.And).
		GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, report, 2)

	// Views aggregate under their own path.
	result, err := unauthenticated.View("monthly_report").Aggregate(ctx, []stofware.AggregateColumn{
		{Name: "total", Function: stofware.AggMean},
	}, nil)
	require.NoError(t, err)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), resultMap["rows"])
}
