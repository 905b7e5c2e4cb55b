package server

import (
	_ "embed"
	"net/http"
)

// The editor page is a single self-contained file; the paint surface,
// brush palette, and action wiring all live in its script block.
//
//go:embed index.html
var pageHTML []byte

// handleIndex serves the editor page at / and nothing else.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(pageHTML)
}
