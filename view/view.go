// Package view renders the embedded HTML templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/diewo77/go-facturas/i18n"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tplCache = struct {
	sync.RWMutex
	m map[string]*template.Template
}{m: map[string]*template.Template{}}

// Funcs returns the func map shared by every template. Translation is bound
// to the language of r.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.LangFromContext(r.Context())
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"lang":  func() string { return lang },
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"num":   func(d decimal.Decimal) string { return d.String() },
		"itoa":  func(n int64) string { return strconv.FormatInt(n, 10) },
		// seq returns 0..n-1 for blank form rows.
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}
}

// parse loads layout.html plus the named page. Funcs are rebound per request
// on a clone, so the parsed tree can be cached.
func parse(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	if _, err := fs.Stat(templatesFS, "templates/"+name); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	t, err := template.New("layout.html").
		Funcs(Funcs(&http.Request{})).
		ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, err
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render executes the named page inside the layout. Nothing is written when
// execution fails, so the caller can still answer with an error. Pass 0 as
// status for 200.
func Render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	base, err := parse(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, err = buf.WriteTo(w)
	return err
}
