// Package render turns a completed receipt into its printable form.
// Rendering is pure: the same receipt always yields the same text.
package render

import (
	"fmt"
	"strings"

	"kasir/internal/models"
)

const (
	lineWidth = 43
	nameWidth = 20
	title     = "SALES RECEIPT"
	timeFmt   = "2006-01-02 15:04:05"
)

// Rows returns the line items of a receipt as columns of strings
// (quantity, item name, unit price, line total), one row per item.
// Alternate renderers share this single source of truth.
func Rows(receipt *models.Receipt) [][]string {
	rows := make([][]string, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Quantity),
			truncate(item.ProductName, nameWidth),
			item.UnitPrice.StringFixed(2),
			item.Total().StringFixed(2),
		})
	}
	return rows
}

// Text renders a receipt as fixed-width text: banner header with the
// receipt number and timestamp, one row per item, and a grand total
// footer. A receipt with no items still renders a valid document with
// grand total 0.00.
func Text(receipt *models.Receipt) string {
	var b strings.Builder

	banner := strings.Repeat("=", lineWidth)
	separator := strings.Repeat("-", lineWidth)

	b.WriteString(banner + "\n")
	b.WriteString(center(title, lineWidth) + "\n")
	b.WriteString(banner + "\n")
	b.WriteString(fmt.Sprintf("Receipt No : %d\n", receipt.ID))
	b.WriteString(fmt.Sprintf("Date       : %s\n", receipt.CreatedAt.Format(timeFmt)))
	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf("%3s %-*s %8s %9s\n", "Qty", nameWidth, "Item", "Price", "Total"))
	b.WriteString(separator + "\n")

	for _, row := range Rows(receipt) {
		b.WriteString(fmt.Sprintf("%3s %-*s %8s %9s\n", row[0], nameWidth, row[1], row[2], row[3]))
	}

	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf("%-*s %9s\n", lineWidth-10, "GRAND TOTAL", receipt.GrandTotal().StringFixed(2)))
	b.WriteString(banner + "\n")

	return b.String()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
