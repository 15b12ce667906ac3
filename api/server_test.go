package api

import (
	"net/http"
	"testing"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
)

func TestNewServerUsesConfiguredPort(t *testing.T) {
	t.Setenv("PORT", "")
	cfg := &config.Config{App: config.AppConfig{Port: "8081"}}
	srv := NewServer(cfg, http.NotFoundHandler())
	if srv.Addr != ":8081" {
		t.Fatalf("expected :8081, got %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Fatal("expected read header timeout to be set")
	}
}

func TestNewServerPrefersPlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := &config.Config{App: config.AppConfig{Port: "8081"}}
	if got := NewServer(cfg, http.NotFoundHandler()).Addr; got != ":9090" {
		t.Fatalf("expected :9090, got %q", got)
	}
}
