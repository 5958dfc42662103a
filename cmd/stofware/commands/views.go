package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewViewsCommand creates the views command group.
func NewViewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "views",
		Aliases: []string{"view"},
		Short:   "Query read-only views",
	}

	cmd.AddCommand(newViewsGetCommand())
	cmd.AddCommand(newViewsAggregateCommand())

	return cmd
}

func newViewsGetCommand() *cobra.Command {
	var (
		opts           QueryOptions
		extraParamsRaw []string
	)

	cmd := &cobra.Command{
		Use:   "get VIEW",
		Short: "Fetch a view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := client.View(args[0])

			err = ApplyQueryFlags(query.Params(), opts)
			if err != nil {
				return err
			}

			query.Params().Merge(ParseParamFlags(extraParamsRaw))

			result, err := query.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch view %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	AddQueryFlags(cmd, &opts)
	cmd.Flags().StringArrayVar(&extraParamsRaw, "param", nil, "extra query parameter KEY=VALUE (repeatable)")

	return cmd
}

func newViewsAggregateCommand() *cobra.Command {
	var (
		opts           QueryOptions
		columnsRaw     []string
		extraParamsRaw []string
	)

	cmd := &cobra.Command{
		Use:   "aggregate VIEW",
		Short: "Run a server-side aggregation over a view",
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

			query := client.View(args[0])

			err = ApplyQueryFlags(query.Params(), opts)
			if err != nil {
				return err
			}

			result, err := query.Aggregate(cmd.Context(), columns, ParseParamFlags(extraParamsRaw))
			if err != nil {
				return fmt.Errorf("failed to aggregate view %s: %w", args[0], err)
			}

			return RenderResult(result)
		},
	}

	AddQueryFlags(cmd, &opts)
	cmd.Flags().StringArrayVar(&columnsRaw, "column", nil, "aggregate column FIELD:FUNCTION (repeatable)")
	cmd.Flags().StringArrayVar(&extraParamsRaw, "param", nil, "extra query parameter KEY=VALUE (repeatable)")

	return cmd
}
