package api

import (
	"net/http"
	"os"
	"time"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	// generous enough for one model call plus the surrounding request work
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second
)

// NewServer returns the HTTP server cmd/api runs. A platform-provided PORT
// overrides the configured one.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + ListenPort(cfg),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

func ListenPort(cfg *config.Config) string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return cfg.App.Port
}
