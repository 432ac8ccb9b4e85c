package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInvoiceJSON(t *testing.T) {
	body := `{"numero":"A-1","fecha":"2024-03-01","año":2024,"cliente_id":"4",
		"items":[{"descripcion":"Widget","cantidad":3,"precio_unitario":10.00}]}`
	f, err := DecodeInvoiceJSON(strings.NewReader(body), "21")
	require.NoError(t, err)
	assert.Equal(t, "2024", f.Year)
	assert.Equal(t, "4", f.ClientID)
	assert.Equal(t, "21", f.TaxPercent)
	require.Len(t, f.Items, 1)
	assert.Equal(t, "10.00", f.Items[0].UnitPrice)

	in, v := ValidateInvoice(f)
	require.True(t, v.Empty(), "%v", v)
	assert.Equal(t, int64(4), in.ClientID)
}

func TestDecodeInvoiceJSON_DropsRowsWithoutDescription(t *testing.T) {
	body := `{"numero":"A-1","fecha":"2024-03-01","año":2024,"cliente_id":1,"items":[
		{"descripcion":"Widget","cantidad":3,"precio_unitario":10},
		{"descripcion":"","cantidad":"","precio_unitario":""},
		{"cantidad":1,"precio_unitario":1},
		{"descripcion":null}]}`
	f, err := DecodeInvoiceJSON(strings.NewReader(body), "21")
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
	assert.Equal(t, "Widget", f.Items[0].Description)

	form := NormalizeInvoiceForm(url.Values{
		"numero": {"A-1"}, "fecha": {"2024-03-01"}, "año": {"2024"}, "cliente_id": {"1"},
		"desc[]": {"Widget", ""}, "cant[]": {"3", ""}, "precio[]": {"10", ""},
	}, "21")
	assert.Equal(t, form.Items, f.Items, "form and JSON submissions agree")

	_, v := ValidateInvoice(f)
	assert.True(t, v.Empty(), "%v", v)
}

func TestDecodeInvoiceJSON_Invalid(t *testing.T) {
	_, err := DecodeInvoiceJSON(strings.NewReader(`{"numero":`), "21")
	assert.Error(t, err)
}

func TestValidateClient(t *testing.T) {
	in, v := ValidateClient(ClientForm{Name: "  Acme ", TaxID: "", Email: "a@acme.test"})
	require.True(t, v.Empty())
	assert.Equal(t, "Acme", in.Name)
	assert.Nil(t, in.TaxID)
	require.NotNil(t, in.Email)
	assert.Equal(t, "a@acme.test", *in.Email)

	_, v = ValidateClient(ClientForm{Name: "   "})
	assert.True(t, v.Has("nombre", "required"))
	assert.Equal(t, []string{"Nombre es requerido"}, v.Messages("es"))
}
