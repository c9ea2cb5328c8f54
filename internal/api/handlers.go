package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dreamware/ticklist/internal/todo"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a store error onto the wire contract:
// unknown id -> 404, validation failure -> 400, anything else -> 500
func writeError(w http.ResponseWriter, err error) {
	var ve *todo.ValidationError
	switch {
	case errors.Is(err, todo.ErrNotFound):
		writeJSON(w, http.StatusNotFound, todo.ErrorResponse{Error: err.Error()})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, todo.ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, todo.ErrorResponse{Error: err.Error()})
	}
}

// writeBadRequest rejects a request that never reached the store
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, todo.ErrorResponse{Error: msg})
}

// pathID extracts the numeric id from the route
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// handleList returns the full list in insertion order
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items := s.store.List()
	writeJSON(w, http.StatusOK, todo.ListResponse{Todos: items, Count: len(items)})
}

// handleCreate adds an item and returns it with its assigned id
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req todo.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}

	item, err := s.store.Create(req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleGet returns a single item by id
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "bad id")
		return
	}

	item, err := s.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleUpdate applies a partial update and returns the current item
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "bad id")
		return
	}

	var patch todo.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "bad json")
		return
	}

	item, err := s.store.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleToggle flips an item's completed flag and returns the result
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "bad id")
		return
	}

	item, err := s.store.Toggle(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleDelete removes an item
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "bad id")
		return
	}

	if err := s.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCompleted removes every completed item
func (s *Server) handleDeleteCompleted(w http.ResponseWriter, r *http.Request) {
	removed := s.store.DeleteCompleted()
	writeJSON(w, http.StatusOK, todo.DeleteCompletedResponse{Removed: removed})
}

// handleToggleAll sets every item to the requested state and returns the
// resulting list. The target is required: a body without "completed" is
// rejected so a lost field can never silently flip the whole list.
func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	var req todo.ToggleAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	if req.Completed == nil {
		writeBadRequest(w, "missing completed")
		return
	}

	items := s.store.ToggleAll(*req.Completed)
	writeJSON(w, http.StatusOK, todo.ListResponse{Todos: items, Count: len(items)})
}

// handleStats returns item counts and served operation counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, todo.StatsResponse{
		Stats: s.store.Stats(),
		Ops:   s.store.OpCounts(),
	})
}
