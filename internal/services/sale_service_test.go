package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kasir/internal/models"
	"kasir/internal/repositories"
	"kasir/internal/services"
)

// MockReceiptEventPublisher is a mock implementation of services.ReceiptEventPublisher
type MockReceiptEventPublisher struct {
	mock.Mock
}

func (m *MockReceiptEventPublisher) PublishReceiptClosed(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

type saleFixture struct {
	catalog *services.CatalogService
	sales   *services.SaleService
	mq      *MockReceiptEventPublisher
	dir     string
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	catalogRepo := repositories.NewMemoryCatalogRepository()
	receiptRepo := repositories.NewMemoryReceiptRepository()
	mq := new(MockReceiptEventPublisher)
	dir := t.TempDir()
	return &saleFixture{
		catalog: services.NewCatalogService(catalogRepo),
		sales:   services.NewSaleService(receiptRepo, catalogRepo, mq, dir),
		mq:      mq,
		dir:     dir,
	}
}

func TestSaleService_FullScenario(t *testing.T) {
	f := newSaleFixture(t)

	widget, err := f.catalog.AddProduct("Widget", dec("9.99"), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, widget.ID)
	gadget, err := f.catalog.AddProduct("Gadget", dec("19.99"), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, gadget.ID)

	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)
	assert.Equal(t, 1001, receipt.ID)
	assert.Empty(t, receipt.Items)

	// Selling 3 widgets decrements stock and appends one snapshot line.
	receipt, err = f.sales.AddItem(receipt.ID, widget.ID, 3)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	item := receipt.Items[0]
	assert.Equal(t, "Widget", item.ProductName)
	assert.True(t, item.UnitPrice.Equal(dec("9.99")))
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Total().Equal(dec("29.97")))

	current, err := f.catalog.GetProduct(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, current.Stock)

	// Asking for 10 gadgets with 5 in stock fails without touching
	// either the stock or the receipt.
	_, err = f.sales.AddItem(receipt.ID, gadget.ID, 10)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	current, err = f.catalog.GetProduct(gadget.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, current.Stock)

	receipt, err = f.sales.GetReceipt(receipt.ID)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	assert.True(t, receipt.GrandTotal().Equal(dec("29.97")))
}

func TestSaleService_AddItemValidation(t *testing.T) {
	f := newSaleFixture(t)

	widget, err := f.catalog.AddProduct("Widget", dec("9.99"), 10)
	require.NoError(t, err)
	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err := f.sales.AddItem(receipt.ID, widget.ID, qty)
		assert.ErrorIs(t, err, models.ErrValidation, "quantity %d must be rejected", qty)
	}

	_, err = f.sales.AddItem(receipt.ID, 999, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// An unknown receipt must not cost any stock.
	_, err = f.sales.AddItem(9999, widget.ID, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	current, err := f.catalog.GetProduct(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, current.Stock)

	fresh, err := f.sales.GetReceipt(receipt.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Items)
}

func TestSaleService_SnapshotsSurviveCatalogChanges(t *testing.T) {
	f := newSaleFixture(t)

	widget, err := f.catalog.AddProduct("Widget", dec("9.99"), 10)
	require.NoError(t, err)
	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)

	_, err = f.sales.AddItem(receipt.ID, widget.ID, 2)
	require.NoError(t, err)

	// Rename, reprice, then remove the product entirely.
	_, err = f.catalog.UpdateProduct(widget.ID, "Widget DX", dec("14.99"))
	require.NoError(t, err)
	require.NoError(t, f.catalog.RemoveProduct(widget.ID))

	fresh, err := f.sales.GetReceipt(receipt.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Items, 1)
	assert.Equal(t, "Widget", fresh.Items[0].ProductName)
	assert.True(t, fresh.Items[0].UnitPrice.Equal(dec("9.99")))
	assert.True(t, fresh.GrandTotal().Equal(dec("19.98")))

	text, err := f.sales.RenderReceipt(receipt.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Widget")
	assert.Contains(t, text, "19.98")
}

func TestSaleService_CloseSale(t *testing.T) {
	f := newSaleFixture(t)
	f.mq.On("PublishReceiptClosed", mock.Anything).Return(nil).Once()

	widget, err := f.catalog.AddProduct("Widget", dec("9.99"), 10)
	require.NoError(t, err)
	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)
	_, err = f.sales.AddItem(receipt.ID, widget.ID, 3)
	require.NoError(t, err)

	closed, path, err := f.sales.CloseSale(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// The receipt file is written under the configured directory.
	require.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Receipt_1001_"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "SALES RECEIPT")
	assert.Contains(t, string(content), "29.97")

	// A closed receipt accepts no more items and cannot close again.
	_, err = f.sales.AddItem(receipt.ID, widget.ID, 1)
	assert.ErrorIs(t, err, models.ErrValidation)
	_, _, err = f.sales.CloseSale(receipt.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	// The failed add cost no stock.
	current, err := f.catalog.GetProduct(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, current.Stock)

	f.mq.AssertExpectations(t)
}

func TestSaleService_CloseEmptyReceipt(t *testing.T) {
	f := newSaleFixture(t)
	f.mq.On("PublishReceiptClosed", mock.Anything).Return(nil).Once()

	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)

	closed, path, err := f.sales.CloseSale(receipt.ID)
	require.NoError(t, err)
	assert.Empty(t, closed.Items)
	assert.True(t, closed.GrandTotal().Equal(dec("0")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "0.00")

	f.mq.AssertExpectations(t)
}

func TestSaleService_PublishFailureDoesNotFailClose(t *testing.T) {
	f := newSaleFixture(t)
	f.mq.On("PublishReceiptClosed", mock.Anything).Return(assert.AnError).Once()

	receipt, err := f.sales.CreateSale()
	require.NoError(t, err)

	closed, _, err := f.sales.CloseSale(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusClosed, closed.Status)

	f.mq.AssertExpectations(t)
}

func TestSaleService_ReceiptIDsSequential(t *testing.T) {
	f := newSaleFixture(t)

	first, err := f.sales.CreateSale()
	require.NoError(t, err)
	second, err := f.sales.CreateSale()
	require.NoError(t, err)

	assert.Equal(t, 1001, first.ID)
	assert.Equal(t, 1002, second.ID)
	assert.NotEqual(t, first.Reference, second.Reference)
}
