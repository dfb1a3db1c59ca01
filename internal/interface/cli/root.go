// Package cli is the orderflow command line. It wires configuration,
// storage and observers together and drives the use cases.
package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	seedFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "orderflow",
		Short:         "Create and inspect orders against the product catalog",
		Long:          "orderflow places orders for existing customers, prices them from the current catalog and decrements stock.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "YAML catalog to load before running the command")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newOrderCmd(opts))
	cmd.AddCommand(newCustomerCmd(opts))
	cmd.AddCommand(newProductCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newHealthCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version, "commit": commit})
		},
	}
}
