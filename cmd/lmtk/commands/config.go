package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lmtk-io/lmtk/internal/credstore"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const maskedValue = "***"

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage lmtk configuration including tenant credentials",
	}

	cmd.AddCommand(newConfigSetCredentialsCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigSetCredentialsCommand() *cobra.Command {
	var accessID, accessKey string

	cmd := &cobra.Command{
		Use:   "set-credentials ACCOUNT",
		Short: "Store a tenant's API keypair",
		Long: `Store a tenant's API keypair in the per-user credential store.
The access key is prompted for when not given, without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := args[0]

			if accessID == "" {
				fmt.Fprint(os.Stderr, "Access ID: ")

				reader := bufio.NewReader(os.Stdin)

				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading access id: %w", err)
				}

				accessID = strings.TrimSpace(line)
			}

			if accessKey == "" {
				fmt.Fprint(os.Stderr, "Access Key: ")

				raw, err := term.ReadPassword(int(os.Stdin.Fd()))

				fmt.Fprintln(os.Stderr)

				if err != nil {
					return fmt.Errorf("reading access key: %w", err)
				}

				accessKey = strings.TrimSpace(string(raw))
			}

			err := credstore.Save(viper.GetString("credentials_file"), account, lmapi.Credentials{
				AccessID:  accessID,
				AccessKey: accessKey,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Stored credentials for tenant '%s'\n", account)

			return nil
		},
	}

	cmd.Flags().StringVar(&accessID, "access-id", "", "API access id")
	cmd.Flags().StringVar(&accessKey, "access-key", "", "API access key (prompted when omitted)")

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored tenants",
		Long:  "Show the tenants in the credential store with their keys masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credstore.Load(viper.GetString("credentials_file"))
			if err != nil {
				return err
			}

			type entry struct {
				Account   string `json:"account"    yaml:"account"`
				AccessID  string `json:"access_id"  yaml:"access_id"`
				AccessKey string `json:"access_key" yaml:"access_key"`
			}

			entries := make([]entry, 0, len(store))
			for account, creds := range store {
				entries = append(entries, entry{Account: account, AccessID: creds.AccessID, AccessKey: maskedValue})
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(entries)
			case OutputFormatYAML:
				return StandardYAMLRenderer(entries)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Account", "Access ID", "Access Key")

				for _, e := range entries {
					_ = table.Append(e.Account, e.AccessID, e.AccessKey)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the credential store path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("credentials_file")
			if path == "" {
				var err error

				path, err = credstore.DefaultPath()
				if err != nil {
					return err
				}
			}

			fmt.Println(path)

			return nil
		},
	}
}
