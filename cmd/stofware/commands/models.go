package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stofloos/stofware-client-go/internal/constants"
)

// NewModelsCommand creates the models command group.
func NewModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"model"},
		Short:   "Query and mutate model collections",
		Long:    "List, fetch, aggregate, create, update, and delete records of a named entity",
	}

	cmd.AddCommand(newModelsListCommand())
	cmd.AddCommand(newModelsGetCommand())
	cmd.AddCommand(newModelsAggregateCommand())
	cmd.AddCommand(newModelsCreateCommand())
	cmd.AddCommand(newModelsUpdateCommand())
	cmd.AddCommand(newModelsBulkUpdateCommand())
	cmd.AddCommand(newModelsDeleteCommand())
	cmd.AddCommand(newModelsBulkDeleteCommand())

	return cmd
}

func newModelsListCommand() *cobra.Command {
	var (
		opts           QueryOptions
		selectFields   []string
		includeFields  []string
		extraParamsRaw []string
	)

	cmd := &cobra.Command{
		Use:   "list ENTITY",
		Short: "List records of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := client.Model(args[0])
			if len(selectFields) > 0 {
				query.Select(selectFields...)
			}

			if len(includeFields) > 0 {
				query.Include(includeFields...)
			}

			// Paging without an explicit size gets the standard one.
			if opts.Page > 0 && opts.PageLimit == 0 {
				opts.PageLimit = constants.StandardPageLimit
			}

			err = ApplyQueryFlags(query.Params(), opts)
			if err != nil {
				return err
			}

			query.Params().Merge(ParseParamFlags(extraParamsRaw))

			result, err := query.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	AddQueryFlags(cmd, &opts)
	cmd.Flags().StringSliceVar(&selectFields, "select", nil, "fields to project")
	cmd.Flags().StringSliceVar(&includeFields, "include", nil, "relations to eager-load")
	cmd.Flags().StringArrayVar(&extraParamsRaw, "param", nil, "extra query parameter KEY=VALUE (repeatable)")

	return cmd
}

func newModelsGetCommand() *cobra.Command {
	var (
		selectFields  []string
		includeFields []string
	)

	cmd := &cobra.Command{
		Use:   "get ENTITY ID",
		Short: "Get one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := client.Model(args[0])
			if len(selectFields) > 0 {
				query.Select(selectFields...)
			}

			if len(includeFields) > 0 {
				query.Include(includeFields...)
			}

			result, err := query.GetSingle(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("failed to get %s/%s: %w", args[0], args[1], err)
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().StringSliceVar(&selectFields, "select", nil, "fields to project")
	cmd.Flags().StringSliceVar(&includeFields, "include", nil, "relations to eager-load")

	return cmd
}

func newModelsAggregateCommand() *cobra.Command {
	var (
		opts           QueryOptions
		columnsRaw     []string
		extraParamsRaw []string
	)

	cmd := &cobra.Command{
		Use:   "aggregate ENTITY",
		Short: "Run a server-side aggregation over an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			columns, err := ParseColumnFlags(columnsRaw)
			if err != nil {
				return err
			}

			query := client.Model(args[0])

			err = ApplyQueryFlags(query.Params(), opts)
			if err != nil {
				return err
			}

			result, err := query.Aggregate(cmd.Context(), columns, ParseParamFlags(extraParamsRaw))
			if err != nil {
				return fmt.Errorf("failed to aggregate %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	AddQueryFlags(cmd, &opts)
	cmd.Flags().StringArrayVar(&columnsRaw, "column", nil, "aggregate column FIELD:FUNCTION (repeatable)")
	cmd.Flags().StringArrayVar(&extraParamsRaw, "param", nil, "extra query parameter KEY=VALUE (repeatable)")

	return cmd
}

func newModelsCreateCommand() *cobra.Command {
	var dataFlags DataOptions

	cmd := &cobra.Command{
		Use:   "create ENTITY",
		Short: "Create a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := dataFlags.Read()
			if err != nil {
				return err
			}

			result, err := client.Model(args[0]).Post(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	dataFlags.AddFlags(cmd)

	return cmd
}

func newModelsUpdateCommand() *cobra.Command {
	var dataFlags DataOptions

	cmd := &cobra.Command{
		Use:   "update ENTITY ID",
		Short: "Update one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := dataFlags.Read()
			if err != nil {
				return err
			}

			result, err := client.Model(args[0]).Put(cmd.Context(), args[1], data)
			if err != nil {
				return fmt.Errorf("failed to update %s/%s: %w", args[0], args[1], err)
			}

			return RenderResult(result)
		},
	}

	dataFlags.AddFlags(cmd)

	return cmd
}

func newModelsBulkUpdateCommand() *cobra.Command {
	var dataFlags DataOptions

	cmd := &cobra.Command{
		Use:   "bulk-update ENTITY",
		Short: "Update many records in one request",
		Long:  "Update many records in one request. The body must carry the identifying keys.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := dataFlags.Read()
			if err != nil {
				return err
			}

			result, err := client.Model(args[0]).BulkPut(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to bulk-update %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	dataFlags.AddFlags(cmd)

	return cmd
}

func newModelsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTITY ID",
		Short: "Delete one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Model(args[0]).Delete(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("failed to delete %s/%s: %w", args[0], args[1], err)
			}

			return RenderResult(result)
		},
	}
}

func newModelsBulkDeleteCommand() *cobra.Command {
	var dataFlags DataOptions

	cmd := &cobra.Command{
		Use:   "bulk-delete ENTITY",
		Short: "Delete many records in one request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := dataFlags.Read()
			if err != nil {
				return err
			}

			result, err := client.Model(args[0]).BulkDelete(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to bulk-delete %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	dataFlags.AddFlags(cmd)

	return cmd
}

// DataOptions carries the request body flags for write commands.
type DataOptions struct {
	Data     string
	DataFile string
}

// AddFlags registers the body flags.
func (o *DataOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Data, "data", "d", "", "request body as a JSON object string")
	cmd.Flags().StringVar(&o.DataFile, "data-file", "", `file holding the JSON body ("-" for stdin)`)
}

// Read resolves the body from --data or --data-file. The string is
// handed to the client as-is; the client validates that it is a JSON
// object.
func (o *DataOptions) Read() (any, error) {
	if o.DataFile != "" {
		var (
			raw []byte
			err error
		)

		if o.DataFile == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(o.DataFile)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}

		return string(raw), nil
	}

	if o.Data != "" {
		return o.Data, nil
	}

	return nil, nil
}
