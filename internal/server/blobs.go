package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

type blobEntry struct {
	data []byte
	mime string
}

// BlobServer serves registered in-memory audio blobs over loopback HTTP.
//
// Register returns the blob's object-URL; the URL stays valid until Release
// is called for the id or the server shuts down.
type BlobServer struct {
	mu      sync.RWMutex
	blobs   map[string]blobEntry
	host    string
	port    int
	baseURL string
	srv     *http.Server
	logger  *log.Logger
}

// NewBlobServer creates a blob server bound to host:port. Port 0 picks a free
// port at Start time.
func NewBlobServer(host string, port int, logger *log.Logger) *BlobServer {
	return &BlobServer{
		blobs:  make(map[string]blobEntry),
		host:   host,
		port:   port,
		logger: logger,
	}
}

// Routes implements [Handler].
func (s *BlobServer) Routes() []string {
	return []string{"/blobs/"}
}

// ServeHTTP serves a registered blob by the id in the URL path.
func (s *BlobServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/blobs/")
	if id == "" {
		http.Error(w, "missing blob id", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	entry, ok := s.blobs[id]
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "blob not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", entry.mime)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(entry.data)))
	w.Write(entry.data)
}

// Start begins listening and serving in a background goroutine. Returns once
// the listener is bound, so object-URLs handed out afterwards are resolvable.
func (s *BlobServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind blob server: %w", err)
	}

	s.baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

	router := NewBasicRouter()
	if s.logger != nil {
		router.Use(requestLogger(s.logger))
	}
	router.Handler(s)

	s.srv = &http.Server{Handler: router}

	go func() {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Error("blob server stopped", "error", err)
			}
		}
	}()

	if s.logger != nil {
		s.logger.Debug("blob server listening", "url", s.baseURL)
	}

	return nil
}

// Shutdown stops the server and drops every registration.
func (s *BlobServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.blobs = make(map[string]blobEntry)
	s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Register stores data under id and returns its object-URL. Re-registering
// an id replaces the previous bytes; the URL is stable.
func (s *BlobServer) Register(id string, data []byte, mime string) string {
	if mime == "" {
		mime = "application/octet-stream"
	}

	s.mu.Lock()
	s.blobs[id] = blobEntry{data: data, mime: mime}
	s.mu.Unlock()

	return fmt.Sprintf("%s/blobs/%s", s.baseURL, id)
}

// Release drops the blob registered under id. Unknown ids are a no-op.
func (s *BlobServer) Release(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("blob request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
