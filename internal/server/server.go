package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"portfolio-chat-backend/internal/config"
	"portfolio-chat-backend/internal/llm"
	"portfolio-chat-backend/internal/prompt"
	"portfolio-chat-backend/internal/types"
)

const (
	internalErrorText = "Internal server error"
	unknownErrorText  = "Unknown error"
)

type Server struct {
	router    *chi.Mux
	completer llm.Completer
	cfg       config.Config
	log       *slog.Logger
}

// NewServer wires the relay against the configured Groq endpoint and persona.
func NewServer(cfg config.Config, logger *slog.Logger) (*Server, error) {
	persona, err := prompt.Load(cfg.PersonaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load persona: %w", err)
	}
	client := llm.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, persona, nil)
	return NewServerWithCompleter(cfg, client, logger), nil
}

// NewServerWithCompleter builds the relay around any upstream implementation.
func NewServerWithCompleter(cfg config.Config, completer llm.Completer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	}))

	s := &Server{
		router:    r,
		completer: completer,
		cfg:       cfg,
		log:       logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChat relays the caller's history upstream and returns the single reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.cfg.GroqAPIKey == "" {
		s.writeError(w, http.StatusInternalServerError, config.ErrMissingAPIKey.Error())
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeInternalError(w, r, err)
		return
	}
	if err := validateHistory(req.Messages); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.completer.Complete(r.Context(), req.Messages)
	if err != nil {
		s.writeRelayError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, types.ChatResponse{Message: &reply})
}

// validateHistory keeps system messages out of caller-supplied history; the
// relay injects its own. An empty history is forwarded as is.
func validateHistory(msgs []types.Message) error {
	for i, m := range msgs {
		switch m.Role {
		case types.RoleUser, types.RoleAssistant:
		default:
			return fmt.Errorf("messages[%d]: role %q is not allowed", i, m.Role)
		}
	}
	return nil
}

func (s *Server) writeRelayError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, config.ErrMissingAPIKey) {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var se *llm.StatusError
	if errors.As(err, &se) {
		s.log.Warn("upstream rejected chat completion",
			"status", se.Status,
			"request_id", chimiddleware.GetReqID(r.Context()))
		s.writeJSON(w, se.Status, types.UpstreamErrorResponse{Error: se.Error(), Details: se.Body})
		return
	}
	s.writeInternalError(w, r, err)
}

func (s *Server) writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	msg := unknownErrorText
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	s.log.Error("chat relay failed", "error", msg, "request_id", chimiddleware.GetReqID(r.Context()))
	s.writeJSON(w, http.StatusInternalServerError, types.InternalErrorResponse{Error: internalErrorText, Message: msg})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	// upstream details are relayed byte for byte
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
