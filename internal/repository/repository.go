// Package repository is the data access layer for clients, invoices and their
// items.
package repository

import (
	"context"
	"errors"

	"github.com/diewo77/go-facturas/internal/db"
	"github.com/diewo77/go-facturas/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository runs every query against the store it was built with.
type Repository struct {
	db *gorm.DB
}

// New returns a repository bound to an open store.
func New(store *db.Store) *Repository {
	return &Repository{db: store.DB}
}

// NewWithDB is used when the caller already holds a *gorm.DB.
func NewWithDB(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// CreateClient inserts a client and returns its id. Names are not unique.
func (r *Repository) CreateClient(ctx context.Context, name string, taxID, email *string) (int64, error) {
	c := models.Client{Name: name, TaxID: taxID, Email: email}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, wrap("create client", err)
	}
	return c.ID, nil
}

// ListClients returns every client, most recently created first.
func (r *Repository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&clients).Error; err != nil {
		return nil, wrap("list clients", err)
	}
	return clients, nil
}

// GetClient returns ErrNotFound when no client has the given id.
func (r *Repository) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get client", err)
	}
	return &c, nil
}

// CreateInvoice inserts a single invoice row with its totals already computed.
// An unknown client id fails the foreign key and is reported as ErrStorage.
func (r *Repository) CreateInvoice(ctx context.Context, inv *models.Invoice) (int64, error) {
	return createInvoice(r.db.WithContext(ctx), inv)
}

// AddItem inserts one line of an existing invoice.
func (r *Repository) AddItem(ctx context.Context, it *models.Item) error {
	return addItem(r.db.WithContext(ctx), it)
}

// CreateInvoiceWithItems stores the invoice and every item in one transaction,
// so a failing item leaves no invoice behind.
func (r *Repository) CreateInvoiceWithItems(ctx context.Context, inv *models.Invoice, items []models.Item) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if id, err = createInvoice(tx, inv); err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = id
			if err := addItem(tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, wrap("create invoice with items", err)
	}
	inv.Items = items
	return id, nil
}

// ListInvoices returns invoices joined with their client, newest first. A
// non-empty term keeps only invoices whose number or client name contains it.
// LIKE is case sensitive on every connection (see db.DSN).
func (r *Repository) ListInvoices(ctx context.Context, term string) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).InnerJoins("Client")
	if term != "" {
		like := "%" + term + "%"
		q = q.Where("facturas.numero LIKE ? OR `Client`.`nombre` LIKE ?", like, like)
	}
	var invoices []models.Invoice
	if err := q.Order("facturas.id DESC").Find(&invoices).Error; err != nil {
		return nil, wrap("list invoices", err)
	}
	return invoices, nil
}

// GetInvoiceWithItems loads an invoice, its client and its items in insertion
// order. It returns ErrNotFound when the invoice does not exist.
func (r *Repository) GetInvoiceWithItems(ctx context.Context, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).
		InnerJoins("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("items.id") }).
		Where("facturas.id = ?", id).
		Take(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get invoice", err)
	}
	return &inv, nil
}

// DeleteInvoice removes the items of the invoice and then the invoice itself
// in a single transaction. Either both deletes are committed or neither is.
// Deleting an id that does not exist is not an error.
func (r *Repository) DeleteInvoice(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("factura_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Invoice{}).Error
	})
	return wrap("delete invoice", err)
}

// CountInvoices returns the number of stored invoices.
func (r *Repository) CountInvoices(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).Count(&n).Error; err != nil {
		return 0, wrap("count invoices", err)
	}
	return n, nil
}

func createInvoice(tx *gorm.DB, inv *models.Invoice) (int64, error) {
	if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
		return 0, wrap("create invoice", err)
	}
	return inv.ID, nil
}

func addItem(tx *gorm.DB, it *models.Item) error {
	if err := tx.Create(it).Error; err != nil {
		return wrap("add item", err)
	}
	return nil
}
