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

// NewWebsitesCommand creates the websites command group.
func NewWebsitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "websites",
		Aliases: []string{"website"},
		Short:   "Manage synthetic website checks",
		Long:    "List and inspect the tenant's website checks",
	}

	cmd.AddCommand(newWebsitesListCommand())
	cmd.AddCommand(newWebsitesGetCommand())

	return cmd
}

func newWebsitesListCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List websites",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			websites, err := client.Websites().List(context.Background(), &lmapi.ListOptions{Size: size})
			if err != nil {
				return fmt.Errorf("failed to list websites: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(websites)
			case OutputFormatYAML:
				return StandardYAMLRenderer(websites)
			default:
				return renderWebsiteTable(websites)
			}
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "cap the number of websites fetched (0 = all)")

	return cmd
}

func newWebsitesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get one website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			websiteID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing website id %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			website, err := client.Websites().Get(context.Background(), websiteID)
			if err != nil {
				if lmapi.IsClient(err) {
					return fmt.Errorf("%w: %d", ErrWebsiteNotFound, websiteID)
				}

				return fmt.Errorf("failed to get website: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return StandardYAMLRenderer(website)
			default:
				return StandardJSONRenderer(website)
			}
		},
	}
}

func renderWebsiteTable(websites []lmapi.Website) error {
	if len(websites) == 0 {
		_, _ = os.Stdout.WriteString("No websites found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Domain", "Type", "Status")

	for _, website := range websites {
		status := website.Status
		if website.StopMonitor {
			status = "stopped"
		}

		_ = table.Append(
			strconv.Itoa(website.ID),
			website.Name,
			website.Domain,
			website.Type,
			status,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
