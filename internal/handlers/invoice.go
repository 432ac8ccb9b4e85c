package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/go-facturas/httpx"
	"github.com/diewo77/go-facturas/internal/metrics"
	"github.com/diewo77/go-facturas/internal/repository"
	"github.com/diewo77/go-facturas/internal/services"
	"github.com/diewo77/go-facturas/pdf"
	"github.com/diewo77/go-facturas/validation"
	"go.uber.org/zap"
)

// blankRows is the number of empty item rows offered by the invoice form.
const blankRows = 3

// InvoiceHandler serves invoices as HTML pages or JSON depending on Accept.
type InvoiceHandler struct {
	Repo       *repository.Repository
	Svc        *services.InvoiceService
	Log        *zap.Logger
	DefaultTax string
}

func NewInvoiceHandler(repo *repository.Repository, svc *services.InvoiceService, log *zap.Logger, defaultTax string) *InvoiceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultTax == "" {
		defaultTax = validation.DefaultTaxPercent
	}
	return &InvoiceHandler{Repo: repo, Svc: svc, Log: log, DefaultTax: defaultTax}
}

// List: GET / – every invoice, or those matching ?q= by number or client name.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	invs, err := h.Repo.ListInvoices(r.Context(), q)
	if err != nil {
		failStore(w, r, h.Log, "storage_error", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs), "q": q})
		return
	}
	render(w, r, h.Log, http.StatusOK, "index.html", map[string]any{"Invoices": invs, "Query": q})
}

// New: GET /facturas/nueva
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, validation.InvoiceForm{TaxPercent: h.DefaultTax}, nil)
}

func (h *InvoiceHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form validation.InvoiceForm, errs []string) {
	clients, err := h.Repo.ListClients(r.Context())
	if err != nil {
		failStore(w, r, h.Log, "storage_error", err)
		return
	}
	render(w, r, h.Log, status, "form.html", map[string]any{
		"Clients":   clients,
		"Form":      form,
		"Errors":    errs,
		"BlankRows": blankRows,
	})
}

// Create: POST /facturas – form or JSON. Invalid input is answered with 400,
// every violation and the submitted values so the form can be shown again.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form validation.InvoiceForm
	if httpx.SendsJSON(r) {
		f, err := validation.DecodeInvoiceJSON(r.Body, h.DefaultTax)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		form = f
	} else {
		if err := r.ParseForm(); err != nil {
			fail(w, r, http.StatusBadRequest, "invalid_form")
			return
		}
		form = validation.NormalizeInvoiceForm(r.PostForm, h.DefaultTax)
	}

	in, violations := validation.ValidateInvoice(form)
	if !violations.Empty() {
		metrics.ValidationFailed("invoice")
		msgs := violations.Messages(langOf(r))
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]any{
				"errors":     msgs,
				"violations": violations,
				"datos":      form,
			})
			return
		}
		h.renderForm(w, r, http.StatusBadRequest, form, msgs)
		return
	}

	inv, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		failStore(w, r, h.Log, "create_failed", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{
			"id":       inv.ID,
			"subtotal": inv.Subtotal.StringFixed(2),
			"impuesto": inv.Tax.StringFixed(2),
			"total":    inv.Total.StringFixed(2),
		})
		return
	}
	http.Redirect(w, r, "/facturas/"+strconv.FormatInt(inv.ID, 10), http.StatusSeeOther)
}

// View: GET /facturas/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, r, http.StatusBadRequest, "invalid_id")
		return
	}
	inv, err := h.Repo.GetInvoiceWithItems(r.Context(), id)
	if err != nil {
		failStore(w, r, h.Log, "storage_error", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, inv)
		return
	}
	render(w, r, h.Log, http.StatusOK, "show.html", map[string]any{"Invoice": inv})
}

// PDF: GET /facturas/{id}/pdf – downloads factura_<numero>.pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, r, http.StatusBadRequest, "invalid_id")
		return
	}
	inv, err := h.Repo.GetInvoiceWithItems(r.Context(), id)
	if err != nil {
		failStore(w, r, h.Log, "storage_error", err)
		return
	}
	data, err := pdf.InvoicePDF(pdf.FromInvoice(inv), langOf(r))
	if err != nil {
		h.Log.Error("pdf generation failed", zap.Int64("id", id), zap.Error(err))
		fail(w, r, http.StatusInternalServerError, "pdf_generation_failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": inv.PDFFilename()}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Delete: POST /facturas/{id}/borrar – removes the invoice and its items.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, r, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		failStore(w, r, h.Log, "delete_failed", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
