package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load menu: %w", err)
		}
		fmt.Print(catalog.FormatFull())
		return nil
	},
}
