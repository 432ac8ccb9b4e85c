package db

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/go-facturas/internal/config"
)

// MemoryPath returns a path naming a private in-memory database. Connections
// opened with the same name share the same data until the last one closes.
func MemoryPath(name string) string {
	safe := strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_").Replace(name)
	return "file:" + safe + "?mode=memory&cache=shared"
}

// IsMemory reports whether path points at an in-memory database.
func IsMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// DSN builds the go-sqlite3 connection string for cfg. Every connection gets
// foreign keys, case sensitive LIKE and a busy timeout; file databases also
// run in WAL mode so readers never block the single writer.
func DSN(cfg config.DatabaseConfig) string {
	path := strings.Trim(strings.TrimSpace(cfg.Path), "\"'")
	if path == "" {
		path = "data/facturas.db"
	}
	if path == ":memory:" {
		path = MemoryPath("facturas")
	}

	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_cslike", "1")
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	}
	if !IsMemory(path) {
		params.Set("_journal_mode", "WAL")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + params.Encode()
}

// filePath strips the URI scheme and query so the directory can be created.
func filePath(path string) string {
	p := strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
