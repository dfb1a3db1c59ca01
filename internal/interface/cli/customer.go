package cli

import (
	"context"

	"github.com/spf13/cobra"

	customeruc "example.com/orderflow/internal/usecase/customer"
)

func newCustomerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerCreateCmd(opts))
	cmd.AddCommand(newCustomerShowCmd(opts))
	return cmd
}

func newCustomerCreateCmd(opts *rootOptions) *cobra.Command {
	var in customeruc.CreateCustomerInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				c, err := a.customers.Create(ctx, in)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&in.Email, "email", "", "customer email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCustomerShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <customer-id>",
		Short: "Print a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				c, err := a.customers.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			})
		},
	}
}
