package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lmtk-io/lmtk/cmd/lmtk/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lmtk",
	Short: "Monitoring platform REST CLI",
	Long: `A command-line interface for the monitoring platform REST API.

Requests are signed with the tenant's LMv1 keypair, taken from
~/.lmtk/credentials.yml or from flags. Collections are fetched across
all pages; rate limits are absorbed by waiting out the advertised window.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.lmtk/config.yml)")
	rootCmd.PersistentFlags().StringP("account", "a", "", "tenant (account) name")
	rootCmd.PersistentFlags().String("access-id", "", "API access id (overrides the credential store)")
	rootCmd.PersistentFlags().String("access-key", "", "API access key (overrides the credential store)")
	rootCmd.PersistentFlags().String("credentials-file", "", "credential store path (default is $HOME/.lmtk/credentials.yml)")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "log every request and response")
	rootCmd.PersistentFlags().Bool("dry-run", false, "suppress modifying requests, log them instead")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))
	_ = viper.BindPFlag("access_id", rootCmd.PersistentFlags().Lookup("access-id"))
	_ = viper.BindPFlag("access_key", rootCmd.PersistentFlags().Lookup("access-key"))
	_ = viper.BindPFlag("credentials_file", rootCmd.PersistentFlags().Lookup("credentials-file"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewDevicesCommand())
	rootCmd.AddCommand(commands.NewAlertsCommand())
	rootCmd.AddCommand(commands.NewWebsitesCommand())
	rootCmd.AddCommand(commands.NewCollectorsCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".lmtk")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("LMTK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
