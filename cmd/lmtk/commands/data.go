package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDataCommand creates the data command: one non-paged time-series window.
func NewDataCommand() *cobra.Command {
	var (
		period     float64
		start      string
		end        string
		datapoints []string
	)

	cmd := &cobra.Command{
		Use:   "data PATH",
		Short: "Fetch a time-series data window",
		Long: `Fetch one non-paged time-series window from a data endpoint.
The window is either --period hours counted back from now, or an explicit
--start/--end pair in RFC 3339.

Examples:
  lmtk data /device/devices/42/devicedatasources/7/data --period 2
  lmtk data /device/devices/42/devicedatasources/7/data \
      --start 2026-08-22T00:00:00Z --end 2026-08-23T00:00:00Z --datapoints cpu,mem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataCommand(args[0], period, start, end, datapoints)
		},
	}

	cmd.Flags().Float64Var(&period, "period", 0, "window length in hours counted back from now")
	cmd.Flags().StringVar(&start, "start", "", "window start (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "window end (RFC 3339)")
	cmd.Flags().StringSliceVar(&datapoints, "datapoints", nil, "restrict returned datapoints")

	return cmd
}

func runDataCommand(path string, period float64, start, end string, datapoints []string) error {
	opts := &lmapi.DataOptions{Period: period, Datapoints: datapoints}

	if start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return fmt.Errorf("parsing --start: %w", err)
		}

		opts.Start = parsed
	}

	if end != "" {
		parsed, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return fmt.Errorf("parsing --end: %w", err)
		}

		opts.End = parsed
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	window, err := client.GetData(context.Background(), path, opts)
	if err != nil {
		return fmt.Errorf("fetching data window: %w", err)
	}

	if window == nil {
		fmt.Println("No data in the requested window")

		return nil
	}

	switch viper.GetString("output") {
	case OutputFormatYAML:
		return StandardYAMLRenderer(window)
	default:
		return StandardJSONRenderer(window)
	}
}
