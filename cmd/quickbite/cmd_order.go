package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/quickbite/internal/state"
)

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderListCmd, orderShowCmd)
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Inspect placed orders",
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		orders := state.NewOrderStore(cfg.DataDir)

		list, err := orders.List(context.Background())
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No orders found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER ID\tCUSTOMER\tITEMS\tTOTAL\tSTATUS\tPLACED")
		for _, o := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t$%.2f\t%s\t%s\n",
				o.OrderID,
				o.Customer.Name,
				len(o.Items),
				o.Total,
				o.Status,
				o.Timestamp.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		orders := state.NewOrderStore(cfg.DataDir)

		order, err := orders.GetByID(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		fmt.Printf("Order ID: %s\n", order.OrderID)
		fmt.Printf("Status:   %s\n", order.Status)
		fmt.Printf("Placed:   %s\n", order.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("Customer: %s (%s)\n", order.Customer.Name, order.Customer.Phone)
		fmt.Printf("Address:  %s, %s\n", order.Customer.Address, order.Customer.ZipCode)
		fmt.Printf("Payment:  %s\n", order.PaymentMethod)
		fmt.Println("Items:")
		for _, item := range order.Items {
			fmt.Printf("  %d x %s - $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
		}
		fmt.Printf("Subtotal: $%.2f\n", order.Subtotal)
		fmt.Printf("Tax:      $%.2f\n", order.Tax)
		fmt.Printf("Total:    $%.2f\n", order.Total)
		return nil
	},
}
