package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	domproduct "example.com/orderflow/internal/domain/product"
	productuc "example.com/orderflow/internal/usecase/product"
)

func newProductCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}
	cmd.AddCommand(newProductCreateCmd(opts))
	cmd.AddCommand(newProductShowCmd(opts))
	return cmd
}

func newProductCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		name     string
		price    string
		quantity int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("%w: price %q", domproduct.ErrInvalidProduct, price)
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				created, err := a.products.Create(ctx, productuc.CreateProductInput{
					Name:     name,
					Price:    p,
					Quantity: quantity,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), mapProduct(created))
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "", "unit price, e.g. 19.99")
	cmd.Flags().Int64Var(&quantity, "quantity", 0, "units in stock")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newProductShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Print a product with its current stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				p, err := a.products.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), mapProduct(p))
			})
		},
	}
}
