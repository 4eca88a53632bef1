package main

import (
	"context"
	"os"

	"go-cart-api/internal/app"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print the cart of a session",
	Args:  cobra.NoArgs,
	RunE:  runCart,
}

func init() {
	rootCmd.AddCommand(cartCmd)
}

func runCart(cmd *cobra.Command, _ []string) error {
	sid, err := sessionFlag(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	return withModules(func(m app.Modules) error {
		detail, err := m.Cart.Detail(context.Background(), sid)
		if err != nil {
			return err
		}
		if format == "json" {
			return printJSON(os.Stdout, detail)
		}
		printCartTable(os.Stdout, detail, locale())
		return nil
	})
}
