package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dreamware/ticklist/internal/storage"
)

// Server exposes a ListStore over HTTP
type Server struct {
	store storage.ListStore
}

// NewServer creates a server around the given store
func NewServer(store storage.ListStore) *Server {
	return &Server{store: store}
}

// Router mounts every route and returns the handler to serve
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	r.HandleFunc("/todos", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/todos", s.handleCreate).Methods(http.MethodPost)

	// Bulk routes are static paths; the id routes are constrained to
	// digits so "completed" and "toggle_all" can never be read as ids
	r.HandleFunc("/todos/completed", s.handleDeleteCompleted).Methods(http.MethodDelete)
	r.HandleFunc("/todos/toggle_all", s.handleToggleAll).Methods(http.MethodPost)

	r.HandleFunc("/todos/{id:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/todos/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/todos/{id:[0-9]+}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/todos/{id:[0-9]+}/toggle", s.handleToggle).Methods(http.MethodPost)

	return r
}
