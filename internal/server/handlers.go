package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"scribble/internal/mask"
	"scribble/internal/session"
)

// Scribble status text shown next to the filename field.
const (
	statusHasMask = "Scribble exists"
	statusNoMask  = "No scribble yet"
)

// state is the JSON snapshot the page renders after every action.
type state struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Total       int    `json:"total"`
	MaskCount   int    `json:"maskCount"`
	HasMask     bool   `json:"hasMask"`
	MaskStatus  string `json:"maskStatus"`
	Status      string `json:"status"` // outcome of the last action
	ProjectPath string `json:"projectPath"`
}

// snapshot recomputes the full UI state for the current cursor position.
// Caller holds s.mu.
func (s *Server) snapshot(status string) (state, error) {
	name := s.cursor.Name()
	count, err := s.masks.Count()
	if err != nil {
		return state{}, err
	}
	hasMask := s.masks.Exists(name)
	maskStatus := statusNoMask
	if hasMask {
		maskStatus = statusHasMask
	}
	return state{
		Index:       s.cursor.Index(),
		Name:        name,
		Total:       s.cursor.Len(),
		MaskCount:   count,
		HasMask:     hasMask,
		MaskStatus:  maskStatus,
		Status:      status,
		ProjectPath: s.projectPath,
	}, nil
}

// writeState responds with the refreshed state snapshot. Caller holds s.mu.
func (s *Server) writeState(w http.ResponseWriter, status string) {
	st, err := s.snapshot(status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("write state: %v", err)
	}
}

// handleState handles GET /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeState(w, "")
}

// handleNext handles POST /api/next: advance the cursor, clamped at the end.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "scribble.next", (*session.Cursor).Next)
}

// handlePrev handles POST /api/prev: step back, clamped at 0.
func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "scribble.prev", (*session.Cursor).Prev)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, span string, step func(*session.Cursor)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, sp := s.tracer.Start(r.Context(), span)
	defer sp.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	step(s.cursor)
	sp.SetAttributes(
		attribute.Int("image.index", s.cursor.Index()),
		attribute.String("image.name", s.cursor.Name()),
	)
	if s.verbose {
		log.Printf("navigate: index=%d name=%s", s.cursor.Index(), s.cursor.Name())
	}
	s.writeState(w, "")
}

// jumpRequest is the body of POST /api/jump.
type jumpRequest struct {
	Name string `json:"name"`
}

// handleJump handles POST /api/jump: move to a typed filename. An unknown
// name is a zero-step refresh of the current image; the cursor stays put
// and the status line flags it, but no error is surfaced.
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, sp := s.tracer.Start(r.Context(), "scribble.jump",
		oteltrace.WithAttributes(attribute.String("image.name", req.Name)))
	defer sp.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	status := ""
	if !s.cursor.JumpTo(req.Name) {
		status = fmt.Sprintf("image not found: %s", req.Name)
	}
	if s.verbose {
		log.Printf("jump: name=%q index=%d", req.Name, s.cursor.Index())
	}
	s.writeState(w, status)
}

// saveRequest is the body of POST /api/save. Each layer is a base64
// encoded PNG with transparency, in paint order.
type saveRequest struct {
	Layers []string `json:"layers"`
}

// handleSave handles POST /api/save: flatten the painted layers into a
// binary mask and write it next to the images. Zero layers is a no-op that
// leaves any existing mask untouched.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.cursor.Name()
	_, sp := s.tracer.Start(r.Context(), "scribble.save", oteltrace.WithAttributes(
		attribute.String("image.name", name),
		attribute.Int("layers", len(req.Layers)),
	))
	defer sp.End()

	layers, err := decodeLayers(req.Layers)
	if err != nil {
		sp.RecordError(err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var width, height int
	if len(layers) > 0 {
		b := layers[0].Bounds()
		width, height = b.Dx(), b.Dy()
	}

	flat, err := mask.Flatten(layers, width, height)
	if errors.Is(err, mask.ErrNoLayers) {
		s.writeState(w, "No scribbles to save.")
		return
	}
	if err != nil {
		sp.RecordError(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	path, err := s.masks.Save(name, flat)
	if err != nil {
		sp.RecordError(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.verbose {
		log.Printf("save: name=%s path=%s layers=%d", name, path, len(layers))
	}
	s.writeState(w, fmt.Sprintf("Scribbles saved to: %s", path))
}

// decodeLayers decodes base64 PNG stroke layers in paint order.
func decodeLayers(encoded []string) ([]image.Image, error) {
	layers := make([]image.Image, 0, len(encoded))
	for i, e := range encoded {
		raw, err := base64.StdEncoding.DecodeString(e)
		if err != nil {
			return nil, fmt.Errorf("layer %d: decode base64: %w", i, err)
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("layer %d: decode png: %w", i, err)
		}
		layers = append(layers, img)
	}
	return layers, nil
}

// handleImage handles GET /api/image: the current image as PNG, the paint
// surface background.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.images.Load(s.cursor.Name())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePNG(w, img)
}

// handleOverlay handles GET /api/overlay: the current image blended with
// its mask, or the bare image when no mask exists.
func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.cursor.Name()
	img, err := s.images.Load(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	m, err := s.masks.Load(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePNG(w, mask.Blend(img, m, mask.DefaultAlpha))
}

func writePNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		log.Printf("write png: %v", err)
	}
}
