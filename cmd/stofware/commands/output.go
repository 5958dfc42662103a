package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RenderResult writes a decoded API payload to stdout in the configured
// output format. Table output handles the common payload shapes (a list
// of objects, a single object, or a paged envelope with an "items" key);
// anything else falls back to JSON.
func RenderResult(result any) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode result as JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode result as YAML: %w", err)
		}

		return nil
	default:
		return renderTable(result)
	}
}

func renderTable(result any) error {
	switch value := result.(type) {
	case nil:
		_, _ = os.Stdout.WriteString("OK\n")

		return nil
	case []any:
		return renderRowsTable(value)
	case map[string]any:
		// Paged envelopes carry the rows under "items".
		if items, ok := value["items"].([]any); ok {
			return renderRowsTable(items)
		}

		return renderObjectTable(value)
	default:
		_, _ = fmt.Fprintf(os.Stdout, "%v\n", value)

		return nil
	}
}

func renderRowsTable(rows []any) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No results found\n")

		return nil
	}

	columns := collectColumns(rows)
	if len(columns) == 0 {
		// Rows of scalars, not objects.
		for _, row := range rows {
			_, _ = fmt.Fprintf(os.Stdout, "%v\n", row)
		}

		return nil
	}

	headerCells := make([]any, 0, len(columns))
	for _, column := range columns {
		headerCells = append(headerCells, column)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(headerCells...)

	for _, row := range rows {
		object, ok := row.(map[string]any)
		if !ok {
			continue
		}

		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, formatCell(object[column]))
		}

		_ = table.Append(cells)
	}

	_ = table.Render()

	return nil
}

func renderObjectTable(object map[string]any) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")

	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		_ = table.Append(key, formatCell(object[key]))
	}

	_ = table.Render()

	return nil
}

// collectColumns returns the union of object keys across all rows, in
// sorted order. First-row key order would be nicer but decoded JSON
// objects do not preserve it.
func collectColumns(rows []any) []string {
	seen := make(map[string]struct{})

	for _, row := range rows {
		object, ok := row.(map[string]any)
		if !ok {
			continue
		}

		for key := range object {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	return columns
}

func formatCell(value any) string {
	switch value.(type) {
	case map[string]any, []any:
		encoded, err := json.Marshal(value)
		if err != nil {
			return cast.ToString(value)
		}

		return string(encoded)
	default:
		return cast.ToString(value)
	}
}
