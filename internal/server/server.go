package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ideaforge-backend/internal/assistant"
	"ideaforge-backend/internal/config"
	"ideaforge-backend/internal/llm"
	"ideaforge-backend/internal/store"
	"ideaforge-backend/internal/types"
)

type Server struct {
	router    *chi.Mux
	store     *store.MemoryStore
	generator *assistant.Generator
	cfg       config.Config
}

// NewServer wires the model client, prompts and session store from cfg.
func NewServer(cfg config.Config) (*Server, error) {
	prompts, err := assistant.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	model := llm.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Stream)
	gen := assistant.NewGenerator(model, cfg.Model, prompts)
	return newServer(cfg, gen, store.NewMemoryStore(cfg.MaxDisplayTurns)), nil
}

func newServer(cfg config.Config, gen *assistant.Generator, ms *store.MemoryStore) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s := &Server{
		router:    r,
		store:     ms,
		generator: gen,
		cfg:       cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/settings", s.handleSettings)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/api/chat/history", s.handleHistory)
	s.router.Post("/api/chat/clear", s.handleClear)
	s.router.Delete("/api/session", s.handleEndSession)
}

func (s *Server) Router() http.Handler { return s.router }

// RunJanitor drops idle sessions until ctx is done.
func (s *Server) RunJanitor(ctx context.Context) {
	ttl := s.cfg.SessionIdleTTL
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(ttl); n > 0 {
				log.Printf("[session] swept %d idle session(s)", n)
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	p := s.generator.Prompts()
	s.writeJSON(w, http.StatusOK, types.SettingsResponse{
		Model:        s.generator.ModelName(),
		Endpoint:     endpointHost(s.cfg.BaseURL),
		Stream:       s.cfg.Stream,
		ContextTurns: p.ContextTurns,
		First:        p.Attempts.First,
		Retry:        p.Attempts.Retry,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	w.Header().Set("X-Session-Id", sid)
	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	epoch, ok := s.store.Begin(sid)
	if !ok {
		s.writeError(w, http.StatusConflict, "a reply is already being generated for this session")
		return
	}
	defer s.store.End(sid)

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	reply := s.generator.Generate(ctx, s.store.Get(sid), message)
	if !s.store.Commit(sid, epoch, assistant.Turn{User: message, Assistant: reply.Text}) {
		log.Printf("[chat] session %s: cleared while generating, reply not recorded", sid)
	}
	log.Printf("[chat] session %s: intent=%s outcome=%s attempts=%d", sid, reply.Intent, reply.Outcome, reply.Attempts)

	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		SessionID: sid,
		Reply:     reply.Text,
		Outcome:   reply.Outcome.String(),
		Intent:    string(reply.Intent),
		Attempts:  reply.Attempts,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sid := getOrCreateSessionID(r, w)
	w.Header().Set("X-Session-Id", sid)
	turns := s.store.Get(sid).Turns()
	if turns == nil {
		turns = []assistant.Turn{}
	}
	s.writeJSON(w, http.StatusOK, types.HistoryResponse{SessionID: sid, Turns: turns})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sid := getOrCreateSessionID(r, w)
	w.Header().Set("X-Session-Id", sid)
	s.store.Clear(sid)
	log.Printf("[chat] session %s: transcript cleared", sid)
	s.writeJSON(w, http.StatusOK, types.HistoryResponse{SessionID: sid, Turns: []assistant.Turn{}})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if sid := getSessionID(r); sid != "" {
		s.store.Delete(sid)
		log.Printf("[session] ended session: %s", sid)
	}
	ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func endpointHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("s_%d", time.Now().UnixNano())
	}
	return "s_" + base64.RawURLEncoding.EncodeToString(b)
}

// getSessionID retrieves the session ID from cookie or query parameter/header
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets existing session ID or creates a new one, setting the cookie
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		log.Printf("[session] creating new session: %s for endpoint: %s", sid, r.URL.Path)
		SetSessionCookie(w, r, sid)
	}
	return sid
}
