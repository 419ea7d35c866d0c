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

// NewDevicesCommand creates the devices command group.
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"device"},
		Short:   "Manage monitored devices",
		Long:    "List and inspect the tenant's monitored devices",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesGetCommand())
	cmd.AddCommand(newDevicesPropertiesCommand())

	return cmd
}

func newDevicesListCommand() *cobra.Command {
	var (
		filter string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Long:  "List the tenant's devices across all pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &lmapi.ListOptions{Size: size}
			if filter != "" {
				opts.Filter = lmapi.RawFilter(filter)
			}

			devices, err := client.Devices().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			return outputDevices(devices)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter expression (raw platform syntax)")
	cmd.Flags().IntVar(&size, "size", 0, "cap the number of devices fetched (0 = all)")

	return cmd
}

func newDevicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get one device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing device id %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			device, err := client.Devices().Get(context.Background(), deviceID)
			if err != nil {
				if lmapi.IsClient(err) {
					return fmt.Errorf("%w: %d", ErrDeviceNotFound, deviceID)
				}

				return fmt.Errorf("failed to get device: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return StandardYAMLRenderer(device)
			default:
				return StandardJSONRenderer(device)
			}
		},
	}
}

func newDevicesPropertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "properties ID",
		Short: "List a device's properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing device id %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			props, err := client.Devices().Properties(context.Background(), deviceID)
			if err != nil {
				return fmt.Errorf("failed to list device properties: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(props)
			case OutputFormatYAML:
				return StandardYAMLRenderer(props)
			default:
				return renderPropertyTable(props)
			}
		},
	}
}

func outputDevices(devices []lmapi.Device) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(devices)
	case OutputFormatYAML:
		return StandardYAMLRenderer(devices)
	default:
		return renderDeviceTable(devices)
	}
}

func renderDeviceTable(devices []lmapi.Device) error {
	if len(devices) == 0 {
		_, _ = os.Stdout.WriteString("No devices found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Display Name", "Name", "Status", "Created")

	for _, device := range devices {
		status := device.HostStatus
		if status == "" {
			status = NotAvailable
		}

		_ = table.Append(
			strconv.Itoa(device.ID),
			device.DisplayName,
			device.Name,
			status,
			formatEpochSeconds(device.CreatedOn),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderPropertyTable(props []lmapi.Property) error {
	if len(props) == 0 {
		_, _ = os.Stdout.WriteString("No properties found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Value")

	for _, prop := range props {
		_ = table.Append(prop.Name, prop.Value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
