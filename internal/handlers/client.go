package handlers

import (
	"net/http"

	"github.com/diewo77/go-facturas/httpx"
	"github.com/diewo77/go-facturas/internal/metrics"
	"github.com/diewo77/go-facturas/internal/repository"
	"github.com/diewo77/go-facturas/internal/services"
	"github.com/diewo77/go-facturas/validation"
	"go.uber.org/zap"
)

type ClientHandler struct {
	Repo *repository.Repository
	Svc  *services.ClientService
	Log  *zap.Logger
}

func NewClientHandler(repo *repository.Repository, svc *services.ClientService, log *zap.Logger) *ClientHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClientHandler{Repo: repo, Svc: svc, Log: log}
}

// List: GET /clientes
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.ListClients(r.Context())
	if err != nil {
		failStore(w, r, h.Log, "storage_error", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
		return
	}
	render(w, r, h.Log, http.StatusOK, "clientes.html", map[string]any{"Clients": clients})
}

// New: GET /clientes/nuevo
func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.Log, http.StatusOK, "cliente_form.html", map[string]any{"Form": validation.ClientForm{}})
}

// Create: POST /clientes – then back to the invoice form, where the new
// client is now selectable.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_form")
		return
	}
	form := validation.NormalizeClientForm(r.PostForm)
	in, violations := validation.ValidateClient(form)
	if !violations.Empty() {
		metrics.ValidationFailed("client")
		msgs := violations.Messages(langOf(r))
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]any{
				"errors": msgs,
				"datos":  form,
			})
			return
		}
		render(w, r, h.Log, http.StatusBadRequest, "cliente_form.html", map[string]any{
			"Form":   form,
			"Errors": msgs,
		})
		return
	}

	id, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		failStore(w, r, h.Log, "client_failed", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{"id": id})
		return
	}
	http.Redirect(w, r, "/facturas/nueva", http.StatusSeeOther)
}
