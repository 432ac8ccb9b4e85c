package services

import (
	"context"

	"github.com/diewo77/go-facturas/internal/metrics"
	"github.com/diewo77/go-facturas/internal/models"
	"github.com/diewo77/go-facturas/validation"
	"go.uber.org/zap"
)

// InvoiceStore is the part of the repository the invoice service needs.
type InvoiceStore interface {
	CreateInvoiceWithItems(ctx context.Context, inv *models.Invoice, items []models.Item) (int64, error)
	DeleteInvoice(ctx context.Context, id int64) error
}

type InvoiceService struct {
	store InvoiceStore
	log   *zap.Logger
}

func NewInvoiceService(store InvoiceStore, log *zap.Logger) *InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceService{store: store, log: log}
}

// Build turns validated input into an invoice and its items with every
// derived amount filled in. Nothing is stored.
func (s *InvoiceService) Build(in validation.InvoiceInput) (*models.Invoice, []models.Item) {
	lines := make([]Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals := ComputeTotals(lines, in.TaxPercent)

	inv := &models.Invoice{
		Number:   in.Number,
		Date:     in.Date,
		Year:     in.Year,
		ClientID: in.ClientID,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
	items := make([]models.Item, len(in.Items))
	for i, it := range in.Items {
		items[i] = models.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      totals.Amounts[i],
		}
	}
	return inv, items
}

// Create computes the totals and stores the invoice with all of its items.
func (s *InvoiceService) Create(ctx context.Context, in validation.InvoiceInput) (*models.Invoice, error) {
	inv, items := s.Build(in)
	id, err := s.store.CreateInvoiceWithItems(ctx, inv, items)
	if err != nil {
		s.log.Error("create invoice failed", zap.String("numero", in.Number), zap.Int64("cliente_id", in.ClientID), zap.Error(err))
		return nil, err
	}
	inv.ID = id
	inv.Items = items
	metrics.InvoiceCreated()
	s.log.Info("invoice created",
		zap.Int64("id", id),
		zap.String("numero", inv.Number),
		zap.Int("items", len(items)),
		zap.String("total", inv.Total.StringFixed(2)),
	)
	return inv, nil
}

// Delete removes an invoice and its items atomically.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		s.log.Error("delete invoice failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	metrics.InvoiceDeleted()
	s.log.Info("invoice deleted", zap.Int64("id", id))
	return nil
}
