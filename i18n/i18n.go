// Package i18n holds the UI and validation messages in Spanish and English.
package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when nothing else matches.
const DefaultLang = "es"

var translations = map[string]map[string]string{
	"es": {
		"required":         "es requerido",
		"invalid_number":   "debe ser un número",
		"invalid_integer":  "debe ser un número entero",
		"must_be_positive": "debe ser mayor que cero",
		"out_of_range":     "está fuera de rango",
		"invalid_format":   "tiene un formato inválido",
		"min_items":        "debe contener al menos un ítem",
		"too_large":        "es demasiado grande",

		"field.numero":              "Número",
		"field.fecha":               "Fecha (AAAA-MM-DD)",
		"field.año":                 "Año (2000-2100)",
		"field.cliente_id":          "Cliente",
		"field.items":               "Ítems",
		"field.descripcion":         "Descripción",
		"field.cantidad":            "Cantidad",
		"field.precio_unitario":     "Precio unitario",
		"field.impuesto_porcentaje": "Impuesto % (0-100)",
		"field.nombre":              "Nombre",
		"item":                      "ítem",

		"invoices":              "Facturas",
		"invoice":               "Factura",
		"new_invoice":           "Nueva factura",
		"new_client":            "Nuevo cliente",
		"clients":               "Clientes",
		"search":                "Buscar",
		"search_hint":           "Número o cliente",
		"number":                "Número",
		"date":                  "Fecha",
		"year":                  "Año",
		"client":                "Cliente",
		"tax_id":                "CUIT",
		"email":                 "Email",
		"items":                 "Ítems",
		"description":           "Descripción",
		"quantity":              "Cantidad",
		"unit_price":            "Precio unitario",
		"amount":                "Monto",
		"subtotal":              "Subtotal",
		"tax":                   "Impuesto",
		"tax_percent":           "Impuesto %",
		"total":                 "Total",
		"save":                  "Guardar",
		"delete":                "Borrar",
		"download_pdf":          "Descargar PDF",
		"back":                  "Volver",
		"no_invoices":           "No hay facturas",
		"no_clients":            "No hay clientes",
		"errors_title":          "Corregí los siguientes errores",
		"not_found":             "No existe",
		"create_failed":         "Error al crear la factura",
		"delete_failed":         "Error al borrar la factura",
		"client_failed":         "Error al crear el cliente",
		"storage_error":         "Error de almacenamiento",
		"invalid_id":            "Identificador inválido",
		"invalid_json":          "JSON inválido",
		"invalid_form":          "Formulario inválido",
		"pdf_generation_failed": "Error al generar el PDF",
		"confirm_delete":        "¿Borrar la factura?",
	},
	"en": {
		"required":         "is required",
		"invalid_number":   "must be a number",
		"invalid_integer":  "must be an integer",
		"must_be_positive": "must be greater than zero",
		"out_of_range":     "is out of range",
		"invalid_format":   "has an invalid format",
		"min_items":        "must contain at least one item",
		"too_large":        "is too large",

		"field.numero":              "Number",
		"field.fecha":               "Date (YYYY-MM-DD)",
		"field.año":                 "Year (2000-2100)",
		"field.cliente_id":          "Client",
		"field.items":               "Items",
		"field.descripcion":         "Description",
		"field.cantidad":            "Quantity",
		"field.precio_unitario":     "Unit price",
		"field.impuesto_porcentaje": "Tax % (0-100)",
		"field.nombre":              "Name",
		"item":                      "item",

		"invoices":              "Invoices",
		"invoice":               "Invoice",
		"new_invoice":           "New invoice",
		"new_client":            "New client",
		"clients":               "Clients",
		"search":                "Search",
		"search_hint":           "Number or client",
		"number":                "Number",
		"date":                  "Date",
		"year":                  "Year",
		"client":                "Client",
		"tax_id":                "Tax ID",
		"email":                 "Email",
		"items":                 "Items",
		"description":           "Description",
		"quantity":              "Quantity",
		"unit_price":            "Unit price",
		"amount":                "Amount",
		"subtotal":              "Subtotal",
		"tax":                   "Tax",
		"tax_percent":           "Tax %",
		"total":                 "Total",
		"save":                  "Save",
		"delete":                "Delete",
		"download_pdf":          "Download PDF",
		"back":                  "Back",
		"no_invoices":           "No invoices",
		"no_clients":            "No clients",
		"errors_title":          "Please fix the following errors",
		"not_found":             "Not found",
		"create_failed":         "Failed to create the invoice",
		"delete_failed":         "Failed to delete the invoice",
		"client_failed":         "Failed to create the client",
		"storage_error":         "Storage error",
		"invalid_id":            "Invalid id",
		"invalid_json":          "Invalid JSON",
		"invalid_form":          "Invalid form",
		"pdf_generation_failed": "Failed to generate the PDF",
		"confirm_delete":        "Delete this invoice?",
	},
}

// T translates code into lang. Unknown languages fall back to Spanish and
// unknown codes are returned unchanged.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// DetectLanguage picks the first supported language of an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(base) {
			return base
		}
	}
	return DefaultLang
}

type langKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language stored by WithLang, or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}
