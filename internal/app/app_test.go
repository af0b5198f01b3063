package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/realbreda/clubsite/internal/config"
	"github.com/realbreda/clubsite/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "clubsite-api",
		HTTPAddr:           ":0",
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		BackendTimeout:     10 * time.Second,
		AuthTimeout:        10 * time.Second,
	}
}

func TestNewHTTPServer_MemoryMode(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer cleanup()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 {
		t.Fatalf("unexpected healthz status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/roster", nil))
	if rec.Code != 200 {
		t.Fatalf("unexpected roster status: %d", rec.Code)
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
