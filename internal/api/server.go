package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pbaille/snipstack/internal/capture"
	"github.com/pbaille/snipstack/internal/domain"
	"github.com/pbaille/snipstack/internal/filter"
	"github.com/pbaille/snipstack/internal/library"
	"github.com/pbaille/snipstack/internal/logging"
	"github.com/pbaille/snipstack/internal/search"
)

// Deps are the collaborators the API serves.
type Deps struct {
	Library  *library.Library
	Capture  *capture.Handler
	Compiler search.Compiler
	Engine   *filter.Engine
}

// Server handles HTTP requests for the snippet API
type Server struct {
	deps Deps
	addr string
}

// New creates a new API server
func New(deps Deps, addr string) *Server {
	return &Server{deps: deps, addr: addr}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Snippets
	mux.HandleFunc("GET /snippets", s.listSnippets)
	mux.HandleFunc("POST /snippets", s.addSnippet)
	mux.HandleFunc("DELETE /snippets", s.deleteAll)
	mux.HandleFunc("GET /snippets/{id}", s.getSnippet)
	mux.HandleFunc("DELETE /snippets/{id}", s.deleteSnippet)

	// Annotations
	mux.HandleFunc("POST /snippets/{id}/notes", s.addNote)
	mux.HandleFunc("DELETE /snippets/{id}/notes/{index}", s.removeNote)
	mux.HandleFunc("POST /snippets/{id}/favorite", s.toggleFavorite)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logging.Info("api listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListResponse is the search result body.
type ListResponse struct {
	Snippets []domain.Snippet  `json:"snippets"`
	Count    int               `json:"count"`
	Spec     domain.FilterSpec `json:"spec"`
}

func (s *Server) listSnippets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := domain.ViewAll
	if q.Get("view") == string(domain.ViewFavorites) {
		view = domain.ViewFavorites
	}
	order := domain.SortNewest
	if q.Get("sort") == string(domain.SortOldest) {
		order = domain.SortOldest
	}

	spec := s.deps.Compiler.Compile(r.Context(), q.Get("q"), domain.FilterSpec{})
	items := s.deps.Engine.Apply(s.deps.Library.All(), spec, view, order)
	if items == nil {
		items = []domain.Snippet{}
	}

	writeJSON(w, http.StatusOK, ListResponse{Snippets: items, Count: len(items), Spec: spec})
}

// AddSnippetRequest is the request body for capturing a snippet
type AddSnippetRequest struct {
	Content   string            `json:"content"`
	SourceApp *domain.SourceApp `json:"source_app,omitempty"`
}

// SnippetResponse carries one snippet and any persistence warning.
type SnippetResponse struct {
	Snippet domain.Snippet `json:"snippet"`
	Warning string         `json:"warning,omitempty"`
}

func (s *Server) addSnippet(w http.ResponseWriter, r *http.Request) {
	var req AddSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	res, err := s.deps.Capture.Capture(r.Context(), capture.Event{Text: req.Content, App: req.SourceApp})
	if !res.Captured {
		writeJSON(w, http.StatusOK, map[string]interface{}{"captured": false, "reason": res.Skipped})
		return
	}
	writeJSON(w, http.StatusCreated, SnippetResponse{Snippet: res.Snippet, Warning: warning(err)})
}

func (s *Server) getSnippet(w http.ResponseWriter, r *http.Request) {
	snippet, err := s.deps.Library.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

func (s *Server) deleteSnippet(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Library.Delete(r.Context(), r.PathValue("id"))
	s.writeMutation(w, nil, err)
}

func (s *Server) deleteAll(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Library.DeleteAll(r.Context())
	s.writeMutation(w, nil, err)
}

// NoteRequest is the request body for adding a note
type NoteRequest struct {
	Note string `json:"note"`
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		writeError(w, http.StatusBadRequest, "note is required")
		return
	}

	snippet, err := s.deps.Library.AddNote(r.Context(), r.PathValue("id"), req.Note)
	s.writeMutation(w, &snippet, err)
}

func (s *Server) removeNote(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "note index must be a number")
		return
	}

	snippet, err := s.deps.Library.RemoveNote(r.Context(), r.PathValue("id"), index)
	s.writeMutation(w, &snippet, err)
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	snippet, err := s.deps.Library.ToggleFavorite(r.Context(), r.PathValue("id"))
	s.writeMutation(w, &snippet, err)
}

// writeMutation reports a mutation. Persistence failures are warnings: the
// change is applied in memory.
func (s *Server) writeMutation(w http.ResponseWriter, snippet *domain.Snippet, err error) {
	if err != nil && !errors.Is(err, library.ErrPersistence) {
		writeFailure(w, err)
		return
	}
	if snippet == nil {
		body := map[string]string{"status": "ok"}
		if msg := warning(err); msg != "" {
			body["warning"] = msg
		}
		writeJSON(w, http.StatusOK, body)
		return
	}
	writeJSON(w, http.StatusOK, SnippetResponse{Snippet: *snippet, Warning: warning(err)})
}

func warning(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, library.ErrNoteIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
