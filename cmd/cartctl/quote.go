package main

import (
	"context"
	"os"

	"go-cart-api/internal/app"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price the selected items of a session",
	Args:  cobra.NoArgs,
	RunE:  runQuote,
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List the orders placed by a session",
	Args:  cobra.NoArgs,
	RunE:  runOrders,
}

func init() {
	ordersCmd.Flags().Int("page", 1, "Page number")
	ordersCmd.Flags().Int("limit", 10, "Orders per page")
	rootCmd.AddCommand(quoteCmd, ordersCmd)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	sid, err := sessionFlag(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	return withModules(func(m app.Modules) error {
		q, err := m.Pricing.Quote(context.Background(), sid)
		if err != nil {
			return err
		}
		if format == "json" {
			return printJSON(os.Stdout, q)
		}
		printQuoteTable(os.Stdout, q, locale())
		return nil
	})
}

func runOrders(cmd *cobra.Command, _ []string) error {
	sid, err := sessionFlag(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	return withModules(func(m app.Modules) error {
		orders, total, err := m.Order.List(context.Background(), sid, page, limit)
		if err != nil {
			return err
		}
		if format == "json" {
			return printJSON(os.Stdout, orders)
		}
		printOrdersTable(os.Stdout, orders, total, locale())
		return nil
	})
}
