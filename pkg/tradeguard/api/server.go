package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/joripage/tradeguard/pkg/tradeguard/bus"
	"github.com/joripage/tradeguard/pkg/tradeguard/repo"
	"go.uber.org/zap"
)

// Server is the operational HTTP surface: a verbatim bus passthrough for
// manual testing, a health probe, and read-only order lookups. Decisions
// are never served synchronously from here.
type Server struct {
	msgBus  bus.MessageBus
	account repo.IAccount
	order   repo.IOrder
}

func NewServer(msgBus bus.MessageBus, sqlRepo repo.IRepo) *Server {
	return &Server{
		msgBus:  msgBus,
		account: sqlRepo.Account(),
		order:   sqlRepo.Order(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bus/publish", s.handlePublish)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /accounts", s.handleListAccounts)
	mux.HandleFunc("GET /orders", s.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	return mux
}

// handlePublish republishes the request body verbatim on the given
// routing key.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	routingKey := r.URL.Query().Get("routingKey")
	if routingKey == "" {
		http.Error(w, "routingKey is required", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body fail", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		http.Error(w, "body must be JSON", http.StatusBadRequest)
		return
	}

	if err := s.msgBus.Publish(r.Context(), routingKey, json.RawMessage(body)); err != nil {
		zap.S().Errorw("publish fail", "routing_key", routingKey, "error", err)
		http.Error(w, "publish fail", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"routingKey": routingKey,
		"payload":    json.RawMessage(body),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	records, err := s.account.GetByFilter(r.Context(), r.URL.Query().Get("userName"))
	if err != nil {
		http.Error(w, "list accounts fail", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		records, err := s.order.GetByTicker(r.Context(), ticker)
		if err != nil {
			http.Error(w, "list orders fail", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	records, err := s.order.List(r.Context())
	if err != nil {
		http.Error(w, "list orders fail", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	record, err := s.order.GetByOrderID(r.Context(), orderID)
	if err == repo.ErrOrderNotFound {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "get order fail", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
