// Package observability hosts the optional debug/metrics HTTP server.
// It is deliberately kept outside internal/game: the simulation core
// never opens a network listener, so anything that does lives here and
// is started, if at all, by a host process such as cmd/demo.
package observability

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig configures the debug server. MUST bind to localhost
// unless WOLFPACK_ALLOW_DEBUG_EXTERNAL=true is set.
type ServerConfig struct {
	Enabled    bool
	ListenAddr string
}

// DefaultServerConfig returns safe localhost-only defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{Enabled: true, ListenAddr: "127.0.0.1:6060"}
}

// StartServer starts the pprof + prometheus debug server as a
// background goroutine and returns immediately.
func StartServer(cfg ServerConfig) error {
	if !cfg.Enabled {
		log.Println("observability: debug server disabled")
		return nil
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("WOLFPACK_ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("observability: forcing debug server to localhost")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("observability: debug server on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("observability: debug server error: %v", err)
		}
	}()

	return nil
}
