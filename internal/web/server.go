package web

import (
	"fmt"
	"net/http"
	"time"
)

// NewHTTPServer creates the HTTP server for handler.
func NewHTTPServer(address string, port int, handler http.Handler) *http.Server {
	if port <= 0 {
		port = 8080
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
