// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/adapters/llm"
	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/usecases"
)

// Server is the HTTP server for the chatbot API.
type Server struct {
	answer *usecases.AnswerUseCase
	log    *zap.Logger
	addr   string
}

// NewServer creates a new HTTP server.
func NewServer(answer *usecases.AnswerUseCase, log *zap.Logger, addr string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{answer: answer, log: log, addr: addr}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/api/health", s.handleHealth)

	server := &http.Server{
		Addr:         s.addr,
		Handler:      corsMiddleware(s.loggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can take a while
	}

	s.log.Info("server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return server.ListenAndServe()
}

type chatRequest struct {
	Messages []entities.ChatMessage `json:"messages"`
}

type askRequest struct {
	Question string `json:"question"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// handleChat runs the full pipeline: structured answer when one exists,
// LLM fallback otherwise. Any outcome that produces text - including the
// apology - is a 200; only missing credentials are a 500.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed"})
		return
	}

	// Configuration errors surface at first request, not silently.
	if !s.answer.HasFallback() {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: llm.ErrNotConfigured.Error()})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	question := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			question = req.Messages[i].Content
			break
		}
	}

	reply, err := s.answer.Answer(r.Context(), question, req.Messages)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply.Text})
}

// handleAsk runs only the structured router. An empty reply means "no
// structured answer; the caller should invoke the LLM path". Store errors
// are hard here - this surface has no fallback.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	reply, err := s.answer.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply.Text})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
