package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-facturas/i18n"
	"github.com/diewo77/go-facturas/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUsesRequestLanguage(t *testing.T) {
	for lang, want := range map[string]string{"es": "Facturas", "en": "Invoices"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(i18n.WithLang(r.Context(), lang))
		w := httptest.NewRecorder()
		require.NoError(t, Render(w, r, 0, "index.html", map[string]any{"Query": ""}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h1>"+want+"</h1>")
	}
}

func TestRenderStatusAndErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/clientes/nuevo", nil)
	w := httptest.NewRecorder()
	err := Render(w, r, http.StatusBadRequest, "cliente_form.html", map[string]any{
		"Errors": []string{"Nombre es requerido"},
		"Form":   validation.ClientForm{Name: "  "},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Nombre es requerido"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	w := httptest.NewRecorder()
	err := Render(w, httptest.NewRequest(http.MethodGet, "/", nil), 0, "missing.html", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, w.Body.Len(), "nothing written on failure")
}

func TestFuncsHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(i18n.WithLang(r.Context(), "en"))
	funcs := Funcs(r)

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"t", "lang", "money", "num", "itoa", "seq"}, names)
	assert.Equal(t, "en", funcs["lang"].(func() string)())
	assert.Equal(t, "42", funcs["itoa"].(func(int64) string)(42))
	assert.Equal(t, []int{0, 1, 2}, funcs["seq"].(func(int) []int)(3))
}
