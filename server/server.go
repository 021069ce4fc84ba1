// Package server exposes the chat agent over HTTP: a public chat endpoint,
// a health probe and an API-key-gated admin surface for lead management.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
	leadx "github.com/maticstudio/chat-agent/agent/lead"
	"github.com/maticstudio/chat-agent/store"
)

type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	AdminAPIKey  string        `envconfig:"ADMIN_API_KEY"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
}

// Server owns the HTTP surface. Leads is nil-safe, so a missing database
// degrades the admin endpoints rather than the chat path.
type Server struct {
	cfg      Config
	sessions *SessionManager
	leads    *store.Manager
	httpSrv  *http.Server
}

func New(cfg Config, sessions *SessionManager, leads *store.Manager) *Server {
	s := &Server{cfg: cfg, sessions: sessions, leads: leads}
	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/admin/leads", s.requireAPIKey(s.handleListLeads))
	mux.HandleFunc("GET /api/admin/analytics", s.requireAPIKey(s.handleAnalytics))
	mux.HandleFunc("PUT /api/admin/leads/{email}/status", s.requireAPIKey(s.handleLeadStatus))
	return mux
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type chatRequest struct {
	Message             string           `json:"message"`
	ConversationHistory []contractx.Turn `json:"conversation_history,omitempty"`
	SessionID           string           `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	agent, sessionID, err := s.sessions.Acquire(req.SessionID)
	if err != nil {
		log.Error().Err(err).Msg("create session agent")
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	reply, err := agent.Process(r.Context(), req.Message)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("process message")
		writeError(w, http.StatusInternalServerError, "failed to generate response")
		return
	}

	s.persistTurn(r, sessionID, req.Message, agent.History())

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  reply,
		Status:    "success",
		SessionID: sessionID,
	})
}

// persistTurn saves the conversation and any lead details found in the user
// message. Both are best-effort.
func (s *Server) persistTurn(r *http.Request, sessionID, userMessage string, history []contractx.Turn) {
	ctx := r.Context()
	s.leads.SaveConversation(ctx, sessionID, history, map[string]any{
		"user_agent": r.Header.Get("User-Agent"),
		"ip_address": r.RemoteAddr,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
	if ld := leadx.Extract(userMessage); ld != nil {
		s.leads.SaveLead(ctx, ld)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	database := "not_configured"
	if s.leads != nil {
		database = "connected"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"service":  "matic-chat-agent",
		"database": database,
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminAPIKey == "" || r.Header.Get("X-API-Key") != s.cfg.AdminAPIKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	leads, err := s.leads.GetLeads(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list leads")
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []store.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.leads.Analytics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("lead analytics")
		writeError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleLeadStatus(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := s.leads.UpdateLeadStatus(r.Context(), email, req.Status)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("update lead status")
		writeError(w, http.StatusInternalServerError, "failed to update lead")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"email":  email,
		"status": req.Status,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{
		"error":  msg,
		"status": "error",
	})
}
