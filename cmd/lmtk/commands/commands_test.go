package commands_test

import (
	"testing"

	"github.com/lmtk-io/lmtk/cmd/lmtk/commands"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func TestNewDevicesCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewDevicesCommand()
	assert.Equal(t, "devices", cmd.Use)
	assert.Equal(t, []string{"device"}, cmd.Aliases)
	assert.Equal(t, "Manage monitored devices", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "properties")
}

func TestDevicesListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewDevicesCommand()
	cmd := findSubcommand(root, "list")
	require.NotNil(t, cmd)
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("filter"))
	assert.NotNil(t, cmd.Flags().Lookup("size"))

	sizeFlag := cmd.Flags().Lookup("size")
	assert.Equal(t, "0", sizeFlag.DefValue)
}

func TestNewGetCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewGetCommand()
	assert.Equal(t, "get PATH", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	assert.NotNil(t, cmd.Flags().Lookup("filter"))
	assert.NotNil(t, cmd.Flags().Lookup("fields"))
	assert.NotNil(t, cmd.Flags().Lookup("sort"))
	assert.NotNil(t, cmd.Flags().Lookup("size"))
	assert.NotNil(t, cmd.Flags().Lookup("version"))
}

func TestNewDataCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewDataCommand()
	assert.Equal(t, "data PATH", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("period"))
	assert.NotNil(t, cmd.Flags().Lookup("start"))
	assert.NotNil(t, cmd.Flags().Lookup("end"))
	assert.NotNil(t, cmd.Flags().Lookup("datapoints"))
}

func TestNewAlertsCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewAlertsCommand()
	assert.Equal(t, "alerts", root.Use)

	cmd := findSubcommand(root, "list")
	require.NotNil(t, cmd)
	assert.NotNil(t, cmd.Flags().Lookup("cleared"))
}

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "set-credentials")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "path")
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc123", "2026-08-23")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
