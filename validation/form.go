package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// DefaultTaxPercent applies when a submission carries no tax percentage.
const DefaultTaxPercent = "21"

// ItemForm is one submitted invoice row, exactly as entered.
type ItemForm struct {
	Description string `json:"descripcion"`
	Quantity    string `json:"cantidad"`
	UnitPrice   string `json:"precio_unitario"`
}

// InvoiceForm is the normalized but still unvalidated invoice submission. It
// keeps the raw text of every field so a rejected form can be shown again.
type InvoiceForm struct {
	Number     string     `json:"numero"`
	Date       string     `json:"fecha"`
	Year       string     `json:"año"`
	ClientID   string     `json:"cliente_id"`
	TaxPercent string     `json:"impuesto_porcentaje"`
	Items      []ItemForm `json:"items"`
}

// ClientForm is the client registration submission.
type ClientForm struct {
	Name  string `json:"nombre"`
	TaxID string `json:"cuit"`
	Email string `json:"email"`
}

// NormalizeInvoiceForm builds an InvoiceForm from posted values. Rows come
// from the parallel desc, cant and precio lists (with or without the []
// suffix); rows without a description are dropped. A missing or blank imp
// takes defaultTax.
func NormalizeInvoiceForm(values url.Values, defaultTax string) InvoiceForm {
	f := InvoiceForm{
		Number:     values.Get("numero"),
		Date:       values.Get("fecha"),
		Year:       values.Get("año"),
		ClientID:   values.Get("cliente_id"),
		TaxPercent: values.Get("imp"),
	}
	if strings.TrimSpace(f.TaxPercent) == "" {
		f.TaxPercent = defaultTaxOr(defaultTax)
	}

	descs := list(values, "desc")
	qtys := list(values, "cant")
	prices := list(values, "precio")
	for i, d := range descs {
		if d == "" {
			continue
		}
		f.Items = append(f.Items, ItemForm{
			Description: d,
			Quantity:    at(qtys, i),
			UnitPrice:   at(prices, i),
		})
	}
	return f
}

// NormalizeClientForm reads the client registration fields.
func NormalizeClientForm(values url.Values) ClientForm {
	return ClientForm{
		Name:  values.Get("nombre"),
		TaxID: values.Get("cuit"),
		Email: values.Get("email"),
	}
}

type jsonItem struct {
	Description json.RawMessage `json:"descripcion"`
	Quantity    json.RawMessage `json:"cantidad"`
	UnitPrice   json.RawMessage `json:"precio_unitario"`
}

type jsonInvoice struct {
	Number     json.RawMessage `json:"numero"`
	Date       json.RawMessage `json:"fecha"`
	Year       json.RawMessage `json:"año"`
	ClientID   json.RawMessage `json:"cliente_id"`
	TaxPercent json.RawMessage `json:"impuesto_porcentaje"`
	Items      []jsonItem      `json:"items"`
}

// DecodeInvoiceJSON reads a JSON invoice submission. Numeric fields may be
// sent as numbers or strings; both end up as text in the form. Items without
// a description are dropped, as in NormalizeInvoiceForm.
func DecodeInvoiceJSON(r io.Reader, defaultTax string) (InvoiceForm, error) {
	var in jsonInvoice
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return InvoiceForm{}, fmt.Errorf("decode invoice: %w", err)
	}
	f := InvoiceForm{
		Number:     rawText(in.Number),
		Date:       rawText(in.Date),
		Year:       rawText(in.Year),
		ClientID:   rawText(in.ClientID),
		TaxPercent: rawText(in.TaxPercent),
	}
	if strings.TrimSpace(f.TaxPercent) == "" {
		f.TaxPercent = defaultTaxOr(defaultTax)
	}
	for _, it := range in.Items {
		desc := rawText(it.Description)
		if desc == "" {
			continue
		}
		f.Items = append(f.Items, ItemForm{
			Description: desc,
			Quantity:    rawText(it.Quantity),
			UnitPrice:   rawText(it.UnitPrice),
		})
	}
	return f, nil
}

func rawText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	return s
}

func list(values url.Values, key string) []string {
	if v, ok := values[key+"[]"]; ok {
		return v
	}
	return values[key]
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func defaultTaxOr(tax string) string {
	if strings.TrimSpace(tax) == "" {
		return DefaultTaxPercent
	}
	return tax
}
