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

// NewAlertsCommand creates the alerts command group.
func NewAlertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "Inspect alerts",
		Long:    "List the tenant's alerts",
	}

	cmd.AddCommand(newAlertsListCommand())

	return cmd
}

func newAlertsListCommand() *cobra.Command {
	var (
		filter      string
		size        int
		showCleared bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		Long:  "List active alerts, newest first by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &lmapi.ListOptions{Size: size, Sort: "-startEpoch"}

			switch {
			case filter != "":
				opts.Filter = lmapi.RawFilter(filter)
			case !showCleared:
				opts.Filter = lmapi.AttrFilter(lmapi.Attr{Attribute: "cleared:", Expression: "false"})
			}

			alerts, err := client.Alerts().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			return outputAlerts(alerts)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter expression (raw platform syntax)")
	cmd.Flags().IntVar(&size, "size", 0, "cap the number of alerts fetched (0 = all)")
	cmd.Flags().BoolVar(&showCleared, "cleared", false, "include cleared alerts")

	return cmd
}

func outputAlerts(alerts []lmapi.Alert) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(alerts)
	case OutputFormatYAML:
		return StandardYAMLRenderer(alerts)
	default:
		return renderAlertTable(alerts)
	}
}

func renderAlertTable(alerts []lmapi.Alert) error {
	if len(alerts) == 0 {
		_, _ = os.Stdout.WriteString("No alerts found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Severity", "Resource", "Instance", "Datapoint", "Started", "Acked")

	for _, alert := range alerts {
		acked := "no"
		if alert.Acked {
			acked = "yes"
		}

		_ = table.Append(
			alert.ID,
			strconv.Itoa(alert.Severity),
			alert.MonitorObjectName,
			alert.InstanceName,
			alert.DataPointName,
			formatEpochSeconds(alert.StartEpoch),
			acked,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
