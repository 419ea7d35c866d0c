package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCollectorsCommand creates the collectors command group.
func NewCollectorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collectors",
		Aliases: []string{"collector"},
		Short:   "Manage collectors",
		Long:    "List and inspect the tenant's data-collection agents",
	}

	cmd.AddCommand(newCollectorsListCommand())
	cmd.AddCommand(newCollectorsGetCommand())

	return cmd
}

func newCollectorsListCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			collectors, err := client.Collectors().List(context.Background(), &lmapi.ListOptions{Size: size})
			if err != nil {
				return fmt.Errorf("failed to list collectors: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(collectors)
			case OutputFormatYAML:
				return StandardYAMLRenderer(collectors)
			default:
				return renderCollectorTable(collectors)
			}
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "cap the number of collectors fetched (0 = all)")

	return cmd
}

func newCollectorsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get one collector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectorID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing collector id %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			collector, err := client.Collectors().Get(context.Background(), collectorID)
			if err != nil {
				if lmapi.IsClient(err) {
					return fmt.Errorf("%w: %d", ErrCollectorNotFound, collectorID)
				}

				return fmt.Errorf("failed to get collector: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return StandardYAMLRenderer(collector)
			default:
				return StandardJSONRenderer(collector)
			}
		},
	}
}

func renderCollectorTable(collectors []lmapi.Collector) error {
	if len(collectors) == 0 {
		_, _ = os.Stdout.WriteString("No collectors found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Hostname", "Platform", "Size", "Build", "State")

	for _, collector := range collectors {
		state := "up"
		if collector.IsDown {
			state = "down"
		}

		_ = table.Append(
			strconv.Itoa(collector.ID),
			collector.Hostname,
			collector.Platform,
			collector.Size,
			collector.Build,
			state,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
