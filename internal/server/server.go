// Package server is the UI controller: it serves the editor page and maps
// browser actions (prev/next/jump/save) onto the stores, the flattening
// rule, and the navigation cursor. One user action runs at a time; a single
// mutex serializes them and nothing is cached between actions — every
// navigation step re-reads image and mask from disk.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"

	"scribble/internal/session"
	"scribble/internal/store"
)

// DefaultPort is the default editor port.
const DefaultPort = 8675

// Config wires the stores and session state into a Server.
type Config struct {
	Images      *store.ImageStore
	Masks       *store.MaskStore
	Cursor      *session.Cursor
	ProjectPath string // absolute root shown in the UI
	Addr        string // listen address; empty means SCRIBBLE_PORT or DefaultPort
	Verbose     bool
}

// Server serves the editor page and its JSON action API.
type Server struct {
	images      *store.ImageStore
	masks       *store.MaskStore
	cursor      *session.Cursor
	projectPath string
	verbose     bool

	tracer oteltrace.Tracer

	mu     sync.Mutex // serializes user actions
	mux    *http.ServeMux
	server *http.Server
	addr   string
}

// New creates the editor server.
// Reads the port from the SCRIBBLE_PORT env var when cfg.Addr is empty,
// defaulting to DefaultPort.
func New(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		port := DefaultPort
		if portStr := os.Getenv("SCRIBBLE_PORT"); portStr != "" {
			if p, err := strconv.Atoi(portStr); err == nil && p > 0 && p < 65536 {
				port = p
			}
		}
		addr = fmt.Sprintf(":%d", port)
	}

	s := &Server{
		images:      cfg.Images,
		masks:       cfg.Masks,
		cursor:      cfg.Cursor,
		projectPath: cfg.ProjectPath,
		verbose:     cfg.Verbose,
		tracer:      otel.Tracer("scribble/server"),
		addr:        addr,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/next", s.handleNext)
	mux.HandleFunc("/api/prev", s.handlePrev)
	mux.HandleFunc("/api/jump", s.handleJump)
	mux.HandleFunc("/api/save", s.handleSave)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/overlay", s.handleOverlay)
	s.mux = mux

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start begins serving the editor (non-blocking).
// Returns immediately, server runs in a background goroutine.
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("editor server error: %v", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
