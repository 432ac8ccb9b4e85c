package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of Invoice.Date.
const DateLayout = "2006-01-02"

// Invoice is a billing invoice. Subtotal, Tax and Total are derived from the
// items when the invoice is created and are never supplied by callers.
type Invoice struct {
	ID       int64           `gorm:"column:id;primaryKey" json:"id"`
	Number   string          `gorm:"column:numero;not null" json:"numero"`
	Date     string          `gorm:"column:fecha;not null" json:"fecha"`
	Year     int             `gorm:"column:año;not null" json:"año"`
	ClientID int64           `gorm:"column:cliente_id;not null" json:"cliente_id"`
	Subtotal decimal.Decimal `gorm:"column:subtotal;type:real;not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"column:impuesto;type:real;not null" json:"impuesto"`
	Total    decimal.Decimal `gorm:"column:total;type:real;not null" json:"total"`

	// Client is populated by list and detail reads.
	Client *Client `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	// Items is populated by detail reads, in insertion order.
	Items []Item `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName maps Invoice to the facturas table.
func (Invoice) TableName() string { return "facturas" }

// ClientName returns the joined client name, empty when the client was not loaded.
func (i *Invoice) ClientName() string {
	if i.Client == nil {
		return ""
	}
	return i.Client.Name
}

// FormattedDate returns the date as DD/MM/YYYY, or the raw value when it is
// not a real calendar date.
func (i *Invoice) FormattedDate() string {
	t, err := time.Parse(DateLayout, i.Date)
	if err != nil {
		return i.Date
	}
	return t.Format("02/01/2006")
}

// PDFFilename is the download name of the exported document.
func (i *Invoice) PDFFilename() string {
	return "factura_" + i.Number + ".pdf"
}

// Item is an invoice line. Its lifetime is bound to its invoice.
type Item struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	InvoiceID   int64           `gorm:"column:factura_id;not null" json:"factura_id"`
	Description string          `gorm:"column:descripcion;not null" json:"descripcion"`
	Quantity    decimal.Decimal `gorm:"column:cantidad;type:real;not null" json:"cantidad"`
	UnitPrice   decimal.Decimal `gorm:"column:precio_unitario;type:real;not null" json:"precio_unitario"`
	Amount      decimal.Decimal `gorm:"column:monto;type:real;not null" json:"monto"`
}

// TableName maps Item to the items table.
func (Item) TableName() string { return "items" }
