package bridge

import (
	"net/http"
	"time"
)

// NewServer returns an HTTP server that serves the websocket at /ws and, when staticDir is set, the
// browser renderer's files at /.
//
// Parameters:
//   - addr: the listen address
//   - staticDir: the directory of the browser renderer, or empty
//   - h: the host serving websocket connections
//
// Returns:
//   - *http.Server: the configured, not yet started server
func NewServer(addr, staticDir string, h Host) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.Handle)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
