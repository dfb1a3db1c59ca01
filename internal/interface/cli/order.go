package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"example.com/orderflow/internal/usecase/createorder"
)

func newOrderCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create and show orders",
	}
	cmd.AddCommand(newOrderCreateCmd(opts))
	cmd.AddCommand(newOrderShowCmd(opts))
	return cmd
}

func newOrderCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		customerID string
		items      []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order for a customer",
		Example: `  orderflow order create --customer C1 --item P1:3 --item P2:2
  orderflow --seed catalog.yaml order create --customer C1 --item P1:1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := parseItems(items)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				o, err := a.createOrder.Execute(ctx, createorder.Request{
					CustomerID: customerID,
					Products:   products,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), mapOrder(o))
			})
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "PRODUCT:QTY, repeatable")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func newOrderShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Print a stored order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				o, err := a.orders.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), mapOrder(o))
			})
		},
	}
}

// parseItems turns PRODUCT:QTY flags into request lines. Quantity rules are
// left to the use case; only the syntax is checked here.
func parseItems(items []string) ([]createorder.RequestProduct, error) {
	products := make([]createorder.RequestProduct, 0, len(items))
	for _, item := range items {
		id, qty, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid item %q: want PRODUCT:QTY", item)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in item %q: %w", item, err)
		}
		products = append(products, createorder.RequestProduct{ID: strings.TrimSpace(id), Quantity: n})
	}
	return products, nil
}
