package repositories_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

func TestMemoryReceiptRepository_SequentialIDsFrom1001(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()

	first := &models.Receipt{}
	second := &models.Receipt{}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	assert.Equal(t, 1001, first.ID)
	assert.Equal(t, 1002, second.ID)
	assert.Equal(t, models.ReceiptStatusOpen, first.Status)
	assert.NotEmpty(t, first.Reference)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryReceiptRepository_AppendAndClose(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()
	receipt := &models.Receipt{}
	require.NoError(t, repo.Create(receipt))

	item := models.ReceiptItem{
		ProductID:   1,
		ProductName: "Widget",
		UnitPrice:   decimal.RequireFromString("9.99"),
		Quantity:    3,
	}
	updated, err := repo.AppendItem(receipt.ID, item)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Items[0].Total().Equal(decimal.RequireFromString("29.97")))

	closed, err := repo.Close(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// A closed receipt accepts no further items and cannot close twice.
	_, err = repo.AppendItem(receipt.ID, item)
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = repo.Close(receipt.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = repo.AppendItem(9999, item)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryReceiptRepository_ReturnsCopies(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()
	receipt := &models.Receipt{}
	require.NoError(t, repo.Create(receipt))

	item := models.ReceiptItem{ProductID: 1, ProductName: "Widget", UnitPrice: decimal.New(999, -2), Quantity: 1}
	_, err := repo.AppendItem(receipt.ID, item)
	require.NoError(t, err)

	got, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	got.Items[0].ProductName = "tampered"
	got.Items = append(got.Items, item)

	fresh, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Items, 1)
	assert.Equal(t, "Widget", fresh.Items[0].ProductName)
}
