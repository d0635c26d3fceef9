package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/latticehq/lattice/pkg/domain"
)

// Editor defines the document operations the HTTP surface exposes.
type Editor interface {
	Get(ctx context.Context, docID string) (*domain.Page, error)
	Put(ctx context.Context, docID string, page *domain.Page) error
	Delete(ctx context.Context, docID string) error
	List(ctx context.Context) ([]string, error)
	Apply(ctx context.Context, docID, targetID string, patch domain.Patch) (bool, error)
	Validate(ctx context.Context, docID string) ([]domain.Violation, error)
	Resolve(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error)
	ResolveRuntime(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error)
	Reorder(ctx context.Context, docID, parentID string, from, to int) (bool, error)
	Select(ctx context.Context, docID, nodeID string) (domain.Selection, error)
	Graph(ctx context.Context, docID, blockID string) (string, error)
}

// Server exposes the document editor over HTTP.
type Server struct {
	Editor Editor
}

// NewHandler builds the routed HTTP handler for the editor.
func NewHandler(editor Editor) http.Handler {
	s := &Server{Editor: editor}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Route("/{docID}", func(r chi.Router) {
			r.Get("/", s.GetDocument)
			r.Put("/", s.PutDocument)
			r.Delete("/", s.DeleteDocument)
			r.Patch("/nodes/{nodeID}", s.PatchNode)
			r.Get("/nodes/{nodeID}/selection", s.GetSelection)
			r.Post("/reorder", s.PostReorder)
			r.Get("/validate", s.GetValidate)
			r.Post("/flows/{blockID}/resolve", s.PostResolve)
			r.Get("/flows/{blockID}/graph", s.GetGraph)
		})
	})

	return r
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Editor.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": ids})
}

// GetDocument handles GET /documents/{docID}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	page, err := s.Editor.Get(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// PutDocument handles PUT /documents/{docID}.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	var page domain.Page
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	docID := chi.URLParam(r, "docID")
	if err := s.Editor.Put(r.Context(), docID, &page); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": docID})
}

// DeleteDocument handles DELETE /documents/{docID}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Editor.Delete(r.Context(), chi.URLParam(r, "docID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchNode handles PATCH /documents/{docID}/nodes/{nodeID}. The body
// is a domain patch; an unknown node id yields applied=false with 200,
// never an error, so optimistic UIs do not have to special-case races
// with deletions.
func (s *Server) PatchNode(w http.ResponseWriter, r *http.Request) {
	var patch domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	applied, err := s.Editor.Apply(r.Context(), chi.URLParam(r, "docID"), chi.URLParam(r, "nodeID"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": applied})
}

// GetSelection handles GET /documents/{docID}/nodes/{nodeID}/selection.
func (s *Server) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.Editor.Select(r.Context(), chi.URLParam(r, "docID"), chi.URLParam(r, "nodeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// ReorderRequest is the body of POST /documents/{docID}/reorder.
type ReorderRequest struct {
	ParentID string `json:"parentId"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

// PostReorder handles POST /documents/{docID}/reorder. Out-of-range
// indices come back as applied=false, not 4xx.
func (s *Server) PostReorder(w http.ResponseWriter, r *http.Request) {
	var body ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	applied, err := s.Editor.Reorder(r.Context(), chi.URLParam(r, "docID"), body.ParentID, body.From, body.To)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": applied})
}

// GetValidate handles GET /documents/{docID}/validate.
func (s *Server) GetValidate(w http.ResponseWriter, r *http.Request) {
	violations, err := s.Editor.Validate(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if violations == nil {
		violations = []domain.Violation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":      len(violations) == 0,
		"violations": violations,
	})
}

// ResolveRequest is the body of POST /documents/{docID}/flows/{blockID}/resolve.
type ResolveRequest struct {
	CurrentStepID string `json:"currentStepId"`
	// Strict selects edit-time resolution where dangling references are
	// hard errors. The default is the lenient runtime path.
	Strict bool `json:"strict,omitempty"`
}

// PostResolve handles POST /documents/{docID}/flows/{blockID}/resolve.
func (s *Server) PostResolve(w http.ResponseWriter, r *http.Request) {
	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	docID := chi.URLParam(r, "docID")
	blockID := chi.URLParam(r, "blockID")

	var res domain.Resolution
	var err error
	if body.Strict {
		res, err = s.Editor.Resolve(r.Context(), docID, blockID, body.CurrentStepID)
	} else {
		res, err = s.Editor.ResolveRuntime(r.Context(), docID, blockID, body.CurrentStepID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetGraph handles GET /documents/{docID}/flows/{blockID}/graph,
// returning the mermaid source as text.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	src, err := s.Editor.Graph(r.Context(), chi.URLParam(r, "docID"), chi.URLParam(r, "blockID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(src))
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, domain.ErrFlowNotFound):
		status = http.StatusNotFound
	}
	var stepErr *domain.StepNotFoundError
	if errors.As(err, &stepErr) {
		status = http.StatusNotFound
	}
	var danglingErr *domain.DanglingReferenceError
	var selfErr *domain.SelfReferenceError
	if errors.As(err, &danglingErr) || errors.As(err, &selfErr) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
