// Package server exposes the composition engine over HTTP.
//
// Endpoints:
//
//	GET    /healthz                 - liveness probe
//	POST   /api/compose             - compose a view from an inline snapshot
//	POST   /api/reconcile           - translate a drag/drop into a mutation intent
//	POST   /api/render              - render a composed view as SVG
//	GET    /api/views               - list saved views
//	POST   /api/views               - create a saved view
//	GET    /api/views/{id}          - fetch a saved view
//	PUT    /api/views/{id}          - update a saved view
//	DELETE /api/views/{id}          - delete a saved view
//	POST   /api/views/{id}/compose  - compose an inline snapshot with a saved view
//
// All responses are JSON except /api/render, which returns image/svg+xml.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowboardhq/flowboard/pkg/board"
	"github.com/flowboardhq/flowboard/pkg/compose"
	"github.com/flowboardhq/flowboard/pkg/errors"
	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/render"
	"github.com/flowboardhq/flowboard/pkg/store"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// maxBodyBytes caps request bodies; snapshots are bounded anyway but this
// stops hostile payloads before JSON decoding.
const maxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	Runner *compose.Runner
	Store  store.Store
	Logger *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	router chi.Router
	runner *compose.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a Server with its routes mounted.
// A nil Runner gets a cacheless default; a nil Store gets an in-memory one.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = compose.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}

	s := &Server{
		runner: opts.Runner,
		store:  opts.Store,
		logger: opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/compose", s.handleCompose)
		r.Post("/reconcile", s.handleReconcile)
		r.Post("/render", s.handleRender)
		r.Get("/views", s.handleListViews)
		r.Post("/views", s.handleCreateView)
		r.Get("/views/{id}", s.handleGetView)
		r.Put("/views/{id}", s.handleUpdateView)
		r.Delete("/views/{id}", s.handleDeleteView)
		r.Post("/views/{id}/compose", s.handleComposeSaved)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// =============================================================================
// Request / response shapes
// =============================================================================

// ComposeRequest carries a snapshot and an inline view configuration.
type ComposeRequest struct {
	Snapshot model.Snapshot `json:"snapshot"`
	View     view.Config    `json:"view"`
}

// SnapshotRequest carries only a snapshot, for endpoints that pair it with a
// saved view.
type SnapshotRequest struct {
	Snapshot model.Snapshot `json:"snapshot"`
}

// ReconcileRequest describes a card drop on a kanban board.
type ReconcileRequest struct {
	Snapshot       model.Snapshot `json:"snapshot"`
	View           view.Config    `json:"view"`
	NodeID         string         `json:"node_id"`
	TargetColumn   string         `json:"target_column"`
	TargetSwimlane string         `json:"target_swimlane"`
}

// RenderRequest asks for an SVG of a graph-shaped view.
type RenderRequest struct {
	Snapshot model.Snapshot `json:"snapshot"`
	View     view.Config    `json:"view"`
	Detailed bool           `json:"detailed"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.runner.Execute(r.Context(), req.Snapshot, req.View)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "compose failed"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleComposeSaved(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadView(w, r)
	if !ok {
		return
	}
	var req SnapshotRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.runner.Execute(r.Context(), req.Snapshot, saved.Config)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "compose failed"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := errors.ValidateID(req.NodeID); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg := req.View
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidView, err, "invalid view"))
		return
	}
	if cfg.Style != view.StyleKanban {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidStyle, "reconcile requires a kanban view, got %s", cfg.Style))
		return
	}
	if err := req.Snapshot.Validate(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "invalid snapshot"))
		return
	}

	n, ok := req.Snapshot.Node(req.NodeID)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNodeNotFound, "node %s not in snapshot", req.NodeID))
		return
	}

	fctx := field.Context{Edges: req.Snapshot.Edges, Nodes: req.Snapshot.NodeIndex()}
	intent := board.Reconcile(n, req.TargetColumn, req.TargetSwimlane, cfg.Column, cfg.Swimlane, fctx)
	if intent.ColumnMutation == board.MutationStatus {
		if nt, ok := req.Snapshot.NodeType(n.Type); ok && !nt.States.Allows(n.Status, req.TargetColumn) {
			s.writeError(w, r, errors.New(errors.ErrCodeTransitionDenied,
				"node type %s forbids %s -> %s", n.Type, n.Status, req.TargetColumn))
			return
		}
	}
	writeJSON(w, http.StatusOK, intent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.runner.Execute(r.Context(), req.Snapshot, req.View)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "compose failed"))
		return
	}

	format := "svg"
	if req.Detailed {
		format = "svg-detailed"
	}
	svg, _, err := s.runner.RenderArtifact(r.Context(), result, format, func() ([]byte, error) {
		dot, err := render.ToDOT(result.Data, render.Options{Detailed: req.Detailed})
		if err != nil {
			return nil, err
		}
		out, err := render.RenderSVG(dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render failed")
		}
		return out, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	views, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list views"))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateView(w http.ResponseWriter, r *http.Request) {
	var v store.SavedView
	if !s.decode(w, r, &v) {
		return
	}
	v.ID = "" // server assigns IDs
	if err := s.saveView(w, r, &v); err != nil {
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	if saved, ok := s.loadView(w, r); ok {
		writeJSON(w, http.StatusOK, saved)
	}
}

func (s *Server) handleUpdateView(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadView(w, r)
	if !ok {
		return
	}
	var v store.SavedView
	if !s.decode(w, r, &v) {
		return
	}
	v.ID = saved.ID
	v.CreatedAt = saved.CreatedAt
	if err := s.saveView(w, r, &v); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.New(errors.ErrCodeViewNotFound, "view %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete view"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) loadView(w http.ResponseWriter, r *http.Request) (*store.SavedView, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	saved, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.New(errors.ErrCodeViewNotFound, "view %s not found", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load view"))
		return nil, false
	}
	return saved, true
}

func (s *Server) saveView(w http.ResponseWriter, r *http.Request, v *store.SavedView) error {
	if v.Name == "" {
		v.Name = v.Config.Name
	}
	if err := errors.ValidateViewName(v.Name); err != nil {
		s.writeError(w, r, err)
		return err
	}
	if err := s.store.Save(r.Context(), v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidView, err, "save view"))
		return err
	}
	return nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	s.logger.Warn("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", code,
		"error", err)
	writeJSON(w, statusFor(code), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeViewNotFound, errors.ErrCodeNodeNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTransitionDenied:
		return http.StatusConflict
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
