package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/go-facturas/httpx"
	"github.com/diewo77/go-facturas/i18n"
	"github.com/diewo77/go-facturas/internal/repository"
	"github.com/diewo77/go-facturas/view"
	"go.uber.org/zap"
)

func langOf(r *http.Request) string { return i18n.LangFromContext(r.Context()) }

// pathID reads the {id} path value; only positive integers are accepted.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fail answers with a translated message (HTML) or an error code (JSON).
func fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, nil)
		return
	}
	http.Error(w, i18n.T(langOf(r), code), status)
}

// failStore maps repository errors to a response: ErrNotFound is a 404,
// everything else a 500 whose cause only goes to the log.
func failStore(w http.ResponseWriter, r *http.Request, log *zap.Logger, code string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		fail(w, r, http.StatusNotFound, "not_found")
		return
	}
	log.Error(code, zap.String("path", r.URL.Path), zap.Error(err))
	fail(w, r, http.StatusInternalServerError, code)
}

func render(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, name string, data map[string]any) {
	if err := view.Render(w, r, status, name, data); err != nil {
		log.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
