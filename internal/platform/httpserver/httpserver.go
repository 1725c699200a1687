package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	// Must exceed the 30s per-request timeout middleware so its timeout
	// response can still be written.
	writeTimeout = 35 * time.Second
	idleTimeout  = 60 * time.Second
)

// New builds the API server. Connection-level timeouts live here;
// request-level deadlines are the timeout middleware's job.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
