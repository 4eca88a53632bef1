package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/order"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/pricing"

	"golang.org/x/text/language"
)

func locale() language.Tag {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return language.Korean
	}
	return tag
}

func printCartTable(w io.Writer, d cart.CartDetailResponse, tag language.Tag) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEL\tPRODUCT\tSIZE\tNAME\tQTY\tPRICE\tLINE")
	for _, it := range d.Items {
		sel := " "
		if it.Selected {
			sel = "x"
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%d\t%s\t%s\n",
			sel, it.ProductID, it.Size, it.Name, it.Qty,
			money.Money(it.Price).Format(tag), money.Money(it.LineTotal).Format(tag))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d item(s), all selected: %t\n", d.ItemCount, d.AllSelected)
}

func printQuoteTable(w io.Writer, q pricing.QuoteResponse, tag language.Tag) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tSIZE\tQTY\tUNIT\tEFFECTIVE\tDISCOUNT")
	for _, l := range q.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ProductID, l.Size, l.Quantity,
			l.UnitPrice.Format(tag), l.EffectivePrice.Format(tag), l.Discount.Format(tag))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal:  %s\n", q.SubtotalText)
	fmt.Fprintf(w, "Discount: -%s\n", q.DiscountTotalText)
	fmt.Fprintf(w, "Shipping:  %s\n", q.ShippingText)
	fmt.Fprintf(w, "Total:     %s\n", q.TotalText)
	if q.FreeShippingLeft > 0 {
		fmt.Fprintf(w, "Add %s more for free shipping\n", money.Money(q.FreeShippingLeft).Format(tag))
	}
	for _, warn := range q.Warnings {
		fmt.Fprintf(w, "warning: product %s: %s\n", warn.ProductID, warn.Message)
	}
}

func printOrdersTable(w io.Writer, orders []order.OrderResponse, total int64, tag language.Tag) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tSTATUS\tITEMS\tTOTAL\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			o.OrderNumber, o.Status, o.ItemCount, o.Totals.Total.Format(tag), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d order(s) total\n", total)
}
