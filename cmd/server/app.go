package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-facturas/httpx"
	"github.com/diewo77/go-facturas/i18n"
	"github.com/diewo77/go-facturas/internal/config"
	"github.com/diewo77/go-facturas/internal/db"
	"github.com/diewo77/go-facturas/internal/handlers"
	"github.com/diewo77/go-facturas/internal/metrics"
	"github.com/diewo77/go-facturas/internal/repository"
	"github.com/diewo77/go-facturas/internal/services"
	"go.uber.org/zap"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux         *http.ServeMux
	handler     http.Handler
	store       *db.Store
	repo        *repository.Repository
	log         *zap.Logger
	defaultLang string

	invoices *handlers.InvoiceHandler
	clients  *handlers.ClientHandler
}

// NewApp wires repository, services and handlers on top of store.
func NewApp(store *db.Store, cfg config.AppConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	repo := repository.New(store)
	app := &App{
		mux:         http.NewServeMux(),
		store:       store,
		repo:        repo,
		log:         log,
		defaultLang: cfg.DefaultLang,
		invoices: handlers.NewInvoiceHandler(repo,
			services.NewInvoiceService(repo, log), log, cfg.DefaultTaxPercent),
		clients: handlers.NewClientHandler(repo,
			services.NewClientService(repo, log), log),
	}
	if !i18n.Supported(app.defaultLang) {
		app.defaultLang = i18n.DefaultLang
	}
	app.setupRoutes()
	// Instrument must see the mux directly so r.Pattern is set when it records.
	app.handler = withLogging(log, app.withPreferences(metrics.Instrument(app.mux)))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	ih := a.invoices
	ch := a.clients

	a.mux.HandleFunc("GET /{$}", ih.List)
	a.mux.HandleFunc("GET /facturas/nueva", ih.New)
	a.mux.HandleFunc("POST /facturas", ih.Create)
	a.mux.HandleFunc("GET /facturas/{id}", ih.View)
	a.mux.HandleFunc("GET /facturas/{id}/pdf", ih.PDF)
	a.mux.HandleFunc("POST /facturas/{id}/borrar", ih.Delete)

	a.mux.HandleFunc("GET /clientes", ch.List)
	a.mux.HandleFunc("GET /clientes/nuevo", ch.New)
	a.mux.HandleFunc("POST /clientes", ch.Create)

	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /metrics", metrics.Handler())
}

// healthz pings the store and reports how many invoices it holds.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.store.Ping(ctx); err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	n, err := a.repo.CountInvoices(ctx)
	if err != nil {
		a.log.Warn("health check count failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok", "facturas": n})
}

// withPreferences picks the request language: ?lang= (remembered in a
// cookie), then the lang cookie, then Accept-Language, then the configured
// default.
func (a *App) withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := strings.ToLower(r.URL.Query().Get("lang")); i18n.Supported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		if lang == "" {
			if h := r.Header.Get("Accept-Language"); h != "" {
				lang = i18n.DetectLanguage(h)
			} else {
				lang = a.defaultLang
			}
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (lw *loggingWriter) WriteHeader(code int) {
	lw.status = code
	lw.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging middleware.
func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lw.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
