package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/quickbite/internal/state"
)

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerListCmd, customerShowCmd)
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Inspect customer profiles",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		customers := state.NewCustomerStore(cfg.DataDir)

		list, err := customers.List(context.Background())
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No customers found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PHONE\tNAME\tZIP\tORDERS")
		for _, c := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
				c.Phone,
				c.Name,
				c.ZipCode,
				len(c.OrderHistory),
			)
		}
		return w.Flush()
	},
}

var customerShowCmd = &cobra.Command{
	Use:   "show <phone>",
	Short: "Show one customer profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		customers := state.NewCustomerStore(cfg.DataDir)

		customer, err := customers.Get(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}

		fmt.Printf("Name:    %s\n", customer.Name)
		fmt.Printf("Phone:   %s\n", customer.Phone)
		fmt.Printf("Address: %s, %s\n", customer.Address, customer.ZipCode)
		if len(customer.OrderHistory) == 0 {
			fmt.Println("Orders:  none")
			return nil
		}
		fmt.Printf("Orders:  %s\n", strings.Join(customer.OrderHistory, ", "))
		return nil
	},
}
