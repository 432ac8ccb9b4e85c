package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	minYear = int64(2000)
	maxYear = int64(2100)
	minTax  = decimal.Zero
	maxTax  = decimal.NewFromInt(100)
)

// ItemInput is a validated invoice row.
type ItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// InvoiceInput is a validated invoice submission. The client id is only
// checked for shape; an unknown client fails later in the store.
type InvoiceInput struct {
	Number     string
	Date       string
	Year       int
	ClientID   int64
	TaxPercent decimal.Decimal
	Items      []ItemInput
}

// ValidateInvoice checks every rule and returns either the typed input or
// the full list of violations, never both.
func ValidateInvoice(f InvoiceForm) (InvoiceInput, Violations) {
	var v Violations
	in := InvoiceInput{
		Number: strings.TrimSpace(f.Number),
		Date:   strings.TrimSpace(f.Date),
	}

	Required("numero", in.Number, &v)
	if Required("fecha", in.Date, &v) {
		Pattern("fecha", in.Date, datePattern, &v)
	}
	if year, ok := Integer("año", f.Year, &v); ok {
		RangeInt("año", year, minYear, maxYear, &v)
		in.Year = int(year)
	}
	if id, ok := Integer("cliente_id", f.ClientID, &v); ok {
		in.ClientID = id
	}

	if len(f.Items) == 0 {
		v.Add("items", "min_items")
	}
	for i, it := range f.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		item := ItemInput{Description: strings.TrimSpace(it.Description)}
		Required(field("descripcion"), item.Description, &v)
		if q, ok := Decimal(field("cantidad"), it.Quantity, &v); ok {
			PositiveDecimal(field("cantidad"), q, &v)
			item.Quantity = q
		}
		if p, ok := Decimal(field("precio_unitario"), it.UnitPrice, &v); ok {
			PositiveDecimal(field("precio_unitario"), p, &v)
			item.UnitPrice = p
		}
		in.Items = append(in.Items, item)
	}

	if pct, ok := Decimal("impuesto_porcentaje", f.TaxPercent, &v); ok {
		RangeDecimal("impuesto_porcentaje", pct, minTax, maxTax, &v)
		in.TaxPercent = pct
	}

	if !v.Empty() {
		return InvoiceInput{}, v
	}
	return in, nil
}

// ClientInput is a validated client registration.
type ClientInput struct {
	Name  string
	TaxID *string
	Email *string
}

// ValidateClient requires a name; blank CUIT and email are stored as NULL.
func ValidateClient(f ClientForm) (ClientInput, Violations) {
	var v Violations
	in := ClientInput{
		Name:  strings.TrimSpace(f.Name),
		TaxID: optional(f.TaxID),
		Email: optional(f.Email),
	}
	if !Required("nombre", in.Name, &v) {
		return ClientInput{}, v
	}
	return in, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
