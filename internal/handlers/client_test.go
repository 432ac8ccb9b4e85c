package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreate(t *testing.T) {
	f := setup(t)
	w := httptest.NewRecorder()
	f.clients.Create(w, postForm("/clientes", url.Values{"nombre": {" Acme "}, "cuit": {"20-1"}, "email": {""}}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/facturas/nueva", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
	req.Header.Set("Accept", "application/json")
	lw := httptest.NewRecorder()
	f.clients.List(lw, req)
	require.Equal(t, http.StatusOK, lw.Code)
	var resp struct {
		Items []struct {
			Name  string  `json:"nombre"`
			TaxID *string `json:"cuit"`
			Email *string `json:"email"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Acme", resp.Items[0].Name)
	require.NotNil(t, resp.Items[0].TaxID)
	assert.Equal(t, "20-1", *resp.Items[0].TaxID)
	assert.Nil(t, resp.Items[0].Email)
}

func TestClientCreateRequiresName(t *testing.T) {
	f := setup(t)
	w := httptest.NewRecorder()
	f.clients.Create(w, postForm("/clientes", url.Values{"nombre": {"  "}, "cuit": {"20-1"}}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Nombre es requerido")
	assert.Contains(t, w.Body.String(), `value="20-1"`, "entered CUIT is kept")

	clients, err := f.repo.ListClients(t.Context())
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestClientPages(t *testing.T) {
	f := setup(t)
	w := httptest.NewRecorder()
	f.clients.New(w, httptest.NewRequest(http.MethodGet, "/clientes/nuevo", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	lw := httptest.NewRecorder()
	f.clients.List(lw, httptest.NewRequest(http.MethodGet, "/clientes", nil))
	assert.Equal(t, http.StatusOK, lw.Code)
	assert.Contains(t, lw.Body.String(), "No hay clientes")
}
