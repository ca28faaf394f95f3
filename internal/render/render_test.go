package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasir/internal/models"
	"kasir/internal/render"
)

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		ID:        1001,
		Reference: "ref-1",
		Status:    models.ReceiptStatusOpen,
		CreatedAt: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestText_EmptyReceipt(t *testing.T) {
	receipt := sampleReceipt()
	text := render.Text(receipt)

	assert.Contains(t, text, "SALES RECEIPT")
	assert.Contains(t, text, "Receipt No : 1001")
	assert.Contains(t, text, "Date       : 2025-06-01 14:30:00")
	assert.Contains(t, text, "GRAND TOTAL")
	assert.Contains(t, text, "0.00")

	// Header, separators, column header, total, footer: no item rows.
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Len(t, lines, 11)
}

func TestText_WithItems(t *testing.T) {
	receipt := sampleReceipt()
	receipt.Items = []models.ReceiptItem{
		{ProductID: 1, ProductName: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 3},
		{ProductID: 2, ProductName: "Gadget", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 1},
	}

	text := render.Text(receipt)

	assert.Contains(t, text, "  3 Widget")
	assert.Contains(t, text, "  1 Gadget")
	assert.Contains(t, text, "29.97")
	assert.Contains(t, text, "19.99")
	assert.Contains(t, text, "49.96") // grand total

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Len(t, lines, 13)

	// Banner lines frame the document at a fixed width.
	assert.Equal(t, strings.Repeat("=", len(lines[0])), lines[0])
	assert.Equal(t, lines[0], lines[len(lines)-1])

	// Rendering is deterministic.
	assert.Equal(t, text, render.Text(receipt))
}

func TestRows(t *testing.T) {
	receipt := sampleReceipt()
	receipt.Items = []models.ReceiptItem{
		{ProductID: 1, ProductName: "Widget", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 3},
	}

	rows := render.Rows(receipt)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"3", "Widget", "9.99", "29.97"}, rows[0])
}

func TestRows_TruncatesLongNames(t *testing.T) {
	receipt := sampleReceipt()
	longName := "Extraordinarily Long Product Name"
	receipt.Items = []models.ReceiptItem{
		{ProductID: 1, ProductName: longName, UnitPrice: decimal.New(100, -2), Quantity: 1},
	}

	rows := render.Rows(receipt)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0][1], 20)
	assert.True(t, strings.HasPrefix(longName, rows[0][1]))
}
