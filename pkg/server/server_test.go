package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowboardhq/flowboard/pkg/board"
	"github.com/flowboardhq/flowboard/pkg/cache"
	"github.com/flowboardhq/flowboard/pkg/compose"
	"github.com/flowboardhq/flowboard/pkg/errors"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/store"
	"github.com/flowboardhq/flowboard/pkg/view"
)

func newTestServer() *Server {
	logger := log.New(io.Discard)
	return New(Options{
		Runner: compose.NewRunner(cache.NewMemoryCache(), nil, logger),
		Store:  store.NewMemoryStore(),
		Logger: logger,
	})
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Nodes: []model.Node{
			{ID: "t1", Type: "task", Title: "Alpha", Status: "Draft"},
			{ID: "t2", Type: "task", Title: "Beta", Status: "Done"},
		},
		Edges: []model.Edge{
			{ID: "e1", Type: "blocks", FromNodeID: "t1", ToNodeID: "t2"},
		},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestComposeEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/compose", ComposeRequest{
		Snapshot: testSnapshot(),
		View:     view.Config{Style: view.StyleKanban},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	result := decodeBody[compose.Result](t, rec)
	if result.Data == nil || result.Data.Board == nil {
		t.Fatalf("missing board payload: %+v", result)
	}
	if len(result.Data.Board.Swimlanes) != 1 {
		t.Errorf("swimlanes = %d", len(result.Data.Board.Swimlanes))
	}
	if result.CacheInfo.ComposeHit {
		t.Error("first request should miss the cache")
	}

	// Identical request is served from cache.
	rec = doJSON(t, s, http.MethodPost, "/api/compose", ComposeRequest{
		Snapshot: testSnapshot(),
		View:     view.Config{Style: view.StyleKanban},
	})
	result = decodeBody[compose.Result](t, rec)
	if !result.CacheInfo.ComposeHit {
		t.Error("second request should hit the cache")
	}
}

func TestComposeRejectsBadInput(t *testing.T) {
	s := newTestServer()

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/compose", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("UnknownStyle", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/compose", ComposeRequest{
			Snapshot: testSnapshot(),
			View:     view.Config{Style: "mosaic"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
		resp := decodeBody[errorResponse](t, rec)
		if resp.Message == "" {
			t.Error("error response should carry a message")
		}
	})
}

func TestViewsCRUD(t *testing.T) {
	s := newTestServer()

	// Create
	rec := doJSON(t, s, http.MethodPost, "/api/views", store.SavedView{
		Name:   "Sprint Board",
		Config: view.Config{Style: view.StyleKanban},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	created := decodeBody[store.SavedView](t, rec)
	if created.ID == "" {
		t.Fatal("created view has no ID")
	}

	// Get
	rec = doJSON(t, s, http.MethodGet, "/api/views/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List
	rec = doJSON(t, s, http.MethodGet, "/api/views", nil)
	views := decodeBody[[]store.SavedView](t, rec)
	if len(views) != 1 {
		t.Fatalf("list = %d views", len(views))
	}

	// Update
	rec = doJSON(t, s, http.MethodPut, "/api/views/"+created.ID, store.SavedView{
		Name:   "Renamed",
		Config: view.Config{Style: view.StyleTable},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body)
	}
	updated := decodeBody[store.SavedView](t, rec)
	if updated.ID != created.ID || updated.Name != "Renamed" {
		t.Errorf("updated = %+v", updated)
	}

	// Delete
	rec = doJSON(t, s, http.MethodDelete, "/api/views/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/views/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestComposeWithSavedView(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/views", store.SavedView{
		Name:   "Board",
		Config: view.Config{Style: view.StyleKanban},
	})
	created := decodeBody[store.SavedView](t, rec)

	rec = doJSON(t, s, http.MethodPost, "/api/views/"+created.ID+"/compose", SnapshotRequest{
		Snapshot: testSnapshot(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	result := decodeBody[compose.Result](t, rec)
	if result.Data == nil || result.Data.Board == nil {
		t.Fatal("missing board payload")
	}

	rec = doJSON(t, s, http.MethodPost, "/api/views/missing/compose", SnapshotRequest{
		Snapshot: testSnapshot(),
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown view status = %d", rec.Code)
	}
}

func TestReconcileEndpoint(t *testing.T) {
	s := newTestServer()

	t.Run("StatusChange", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/reconcile", ReconcileRequest{
			Snapshot:     testSnapshot(),
			View:         view.Config{Style: view.StyleKanban},
			NodeID:       "t1",
			TargetColumn: "Done",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
		}
		intent := decodeBody[board.Intent](t, rec)
		if !intent.ColumnChanged || intent.ColumnMutation != board.MutationStatus {
			t.Errorf("intent = %+v", intent)
		}
		if intent.TargetColumn != "Done" {
			t.Errorf("target = %q", intent.TargetColumn)
		}
	})

	t.Run("UnknownNode", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/reconcile", ReconcileRequest{
			Snapshot:     testSnapshot(),
			View:         view.Config{Style: view.StyleKanban},
			NodeID:       "ghost",
			TargetColumn: "Done",
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("TransitionDenied", func(t *testing.T) {
		snap := testSnapshot()
		snap.NodeTypes = []model.NodeType{{
			Name: "task",
			States: &model.StateMachine{
				Enabled:     true,
				Values:      []string{"Draft", "Review", "Done"},
				Transitions: []model.StateTransition{{From: "Draft", To: "Review"}, {From: "Review", To: "Done"}},
			},
		}}
		rec := doJSON(t, s, http.MethodPost, "/api/reconcile", ReconcileRequest{
			Snapshot:     snap,
			View:         view.Config{Style: view.StyleKanban},
			NodeID:       "t1",
			TargetColumn: "Done",
		})
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
		}
		resp := decodeBody[errorResponse](t, rec)
		if resp.Code != errors.ErrCodeTransitionDenied {
			t.Errorf("code = %s", resp.Code)
		}
	})

	t.Run("TransitionAllowed", func(t *testing.T) {
		snap := testSnapshot()
		snap.NodeTypes = []model.NodeType{{
			Name: "task",
			States: &model.StateMachine{
				Enabled:     true,
				Values:      []string{"Draft", "Review", "Done"},
				Transitions: []model.StateTransition{{From: "Draft", To: "Review"}},
			},
		}}
		rec := doJSON(t, s, http.MethodPost, "/api/reconcile", ReconcileRequest{
			Snapshot:     snap,
			View:         view.Config{Style: view.StyleKanban},
			NodeID:       "t1",
			TargetColumn: "Review",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
		}
	})

	t.Run("NonKanbanView", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/reconcile", ReconcileRequest{
			Snapshot:     testSnapshot(),
			View:         view.Config{Style: view.StyleTable},
			NodeID:       "t1",
			TargetColumn: "Done",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestRenderRejectsNonGraphStyles(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/api/render", RenderRequest{
		Snapshot: testSnapshot(),
		View:     view.Config{Style: view.StyleKanban},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body)
	}
}
