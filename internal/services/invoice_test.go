package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-facturas/internal/models"
	"github.com/diewo77/go-facturas/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory InvoiceStore and ClientStore.
type memStore struct {
	invoices map[int64]models.Invoice
	items    map[int64][]models.Item
	clients  map[int64]string
	nextID   int64
	err      error
}

func newMemStore() *memStore {
	return &memStore{
		invoices: map[int64]models.Invoice{},
		items:    map[int64][]models.Item{},
		clients:  map[int64]string{},
	}
}

func (m *memStore) CreateInvoiceWithItems(_ context.Context, inv *models.Invoice, items []models.Item) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	inv.ID = m.nextID
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	m.invoices[inv.ID] = *inv
	m.items[inv.ID] = append([]models.Item(nil), items...)
	return inv.ID, nil
}

func (m *memStore) DeleteInvoice(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.items, id)
	delete(m.invoices, id)
	return nil
}

func (m *memStore) CreateClient(_ context.Context, name string, _, _ *string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	m.clients[m.nextID] = name
	return m.nextID, nil
}

func widgetInput() validation.InvoiceInput {
	return validation.InvoiceInput{
		Number:     "A-1",
		Date:       "2024-03-01",
		Year:       2024,
		ClientID:   1,
		TaxPercent: d("21"),
		Items: []validation.ItemInput{
			{Description: "Widget", Quantity: d("3"), UnitPrice: d("10.00")},
		},
	}
}

func TestInvoiceService_Create(t *testing.T) {
	store := newMemStore()
	svc := NewInvoiceService(store, nil)

	inv, err := svc.Create(context.Background(), widgetInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), inv.ID)
	assert.True(t, inv.Subtotal.Equal(d("30")))
	assert.True(t, inv.Tax.Equal(d("6.30")))
	assert.True(t, inv.Total.Equal(d("36.30")))

	stored := store.items[inv.ID]
	require.Len(t, stored, 1)
	assert.Equal(t, inv.ID, stored[0].InvoiceID)
	assert.True(t, stored[0].Amount.Equal(d("30.00")))
}

func TestInvoiceService_CreatePropagatesStoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk full")
	svc := NewInvoiceService(store, nil)

	inv, err := svc.Create(context.Background(), widgetInput())
	assert.Nil(t, inv)
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, store.invoices)
}

func TestInvoiceService_Delete(t *testing.T) {
	store := newMemStore()
	svc := NewInvoiceService(store, nil)
	inv, err := svc.Create(context.Background(), widgetInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), inv.ID))
	assert.Empty(t, store.invoices)
	assert.Empty(t, store.items)
}

func TestClientService_Register(t *testing.T) {
	store := newMemStore()
	svc := NewClientService(store, nil)
	id, err := svc.Register(context.Background(), validation.ClientInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", store.clients[id])
}
