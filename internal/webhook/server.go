// Package webhook exposes the ordering assistant over HTTP: a chat endpoint
// plus small read-only debug APIs for the menu, orders, and sessions.
package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/user/quickbite/internal/menu"
	"github.com/user/quickbite/internal/state"
	"github.com/user/quickbite/internal/types"
)

// ChatHandler processes one user message within the given session and
// returns the assistant's response.
type ChatHandler func(sessionKey, message string) (string, error)

// Server is a lightweight HTTP handler for the chat and debug endpoints.
type Server struct {
	chat        ChatHandler
	catalog     *menu.Catalog
	orders      types.OrderStore
	sessions    types.SessionStore
	transcripts *state.TranscriptStore
	mux         *http.ServeMux
}

// NewServer creates a webhook Server over the chat handler and stores.
func NewServer(chat ChatHandler, catalog *menu.Catalog, orders types.OrderStore, sessions types.SessionStore, transcripts *state.TranscriptStore) *Server {
	s := &Server{
		chat:        chat,
		catalog:     catalog,
		orders:      orders,
		sessions:    sessions,
		transcripts: transcripts,
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("GET /api/menu", s.handleAPIMenu)
	s.mux.HandleFunc("GET /api/orders", s.handleAPIOrders)
	s.mux.HandleFunc("GET /api/orders/", s.handleAPIOrder)
	s.mux.HandleFunc("GET /api/sessions", s.handleAPISessions)
	s.mux.HandleFunc("GET /api/sessions/", s.handleAPISessionTranscript)
	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// chatRequest is the JSON body for POST /chat.
type chatRequest struct {
	SessionKey string `json:"session_key"`
	Message    string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	if req.Message == "" || req.SessionKey == "" {
		http.Error(w, `{"error":"message and session_key are required"}`, http.StatusBadRequest)
		return
	}

	resp, err := s.chat(req.SessionKey, req.Message)
	if err != nil {
		slog.Error("chat handler failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	out := map[string]string{"response": resp}
	if sess, err := s.sessions.ResolveOrCreate(r.Context(), types.SessionKey(req.SessionKey)); err == nil {
		out["state"] = string(sess.State)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAPIMenu(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(s.catalog.JSON()))
}

func (s *Server) handleAPIOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (s *Server) handleAPIOrder(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" {
		http.Error(w, `{"error":"order id required"}`, http.StatusBadRequest)
		return
	}

	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"order not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (s *Server) handleAPISessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

func (s *Server) handleAPISessionTranscript(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id, ok := strings.CutSuffix(rest, "/transcript")
	if !ok || id == "" {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	entries, err := s.transcripts.Tail(r.Context(), types.SessionID(id), 200)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*types.TranscriptEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
