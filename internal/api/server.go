// Package api provides the HTTP presentation boundary for negotiations:
// JSON endpoints for creating games, submitting statements, conceding,
// applying influence actions, and reading session state. It renders nothing;
// it loads a session, hands it to the engine, and persists the result.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/townhall/internal/engine"
	"github.com/talgya/townhall/internal/entropy"
	"github.com/talgya/townhall/internal/persistence"
	"github.com/talgya/townhall/internal/roster"
)

// Server serves the negotiation API over HTTP.
type Server struct {
	Store     *persistence.Store
	Engine    *engine.Engine
	MaxRounds int

	// One human action mutates one session at a time; the lock also guards
	// the engine's shared random source.
	mu sync.Mutex
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/roles", s.handleRoles)
	mux.HandleFunc("GET /api/v1/actions", s.handleActions)

	mux.HandleFunc("GET /api/v1/games", s.handleListGames)
	mux.HandleFunc("POST /api/v1/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/v1/games/{id}", s.handleGetGame)
	mux.HandleFunc("DELETE /api/v1/games/{id}", s.handleDeleteGame)

	mux.HandleFunc("POST /api/v1/games/{id}/statement", s.handleStatement)
	mux.HandleFunc("POST /api/v1/games/{id}/concede", s.handleConcede)
	mux.HandleFunc("POST /api/v1/games/{id}/influence", s.handleInfluence)

	mux.HandleFunc("GET /api/v1/games/{id}/participants/{pid}", s.handleParticipant)

	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps engine errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrTargetNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrConcluded):
		return http.StatusConflict
	case errors.Is(err, engine.ErrEmptyStatement),
		errors.Is(err, engine.ErrStatementTooShort),
		errors.Is(err, engine.ErrInsufficientTokens),
		errors.Is(err, engine.ErrUnknownAction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	roles := make([]roster.Role, 0, len(roster.Roles))
	for _, id := range []roster.RoleID{roster.RoleDeveloper, roster.RoleResident, roster.RoleCouncil, roster.RoleStudent} {
		roles = append(roles, roster.Roles[id])
	}
	writeJSON(w, http.StatusOK, roles)
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, actionTable())
}

type createGameRequest struct {
	Role    roster.RoleID       `json:"role"`
	Profile roster.HumanProfile `json:"profile"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !roster.Valid(req.Role) {
		writeError(w, http.StatusUnprocessableEntity, "unknown role")
		return
	}
	if strings.TrimSpace(req.Profile.Name) == "" {
		writeError(w, http.StatusUnprocessableEntity, "profile name is required")
		return
	}

	gen := roster.NewGenerator(entropy.Seed())
	participants, err := gen.Generate(req.Role, req.Profile)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	session := engine.NewSession(uuid.NewString(), req.Role, participants, s.MaxRounds)
	if err := s.Store.Save(session); err != nil {
		slog.Error("save new session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save session")
		return
	}

	slog.Info("game created", "session", session.ID, "role", req.Role)
	writeJSON(w, http.StatusCreated, gameView(session))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameView(session))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	err := s.Store.Delete(r.PathValue("id"))
	if errors.Is(err, persistence.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	infos, err := s.Store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessionList(infos))
}

type statementRequest struct {
	Statement string `json:"statement"`
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	var req statementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	_, err := s.Engine.SubmitStatement(r.Context(), session, req.Statement)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if err := s.Store.Save(session); err != nil {
		slog.Error("save session after statement", "session", session.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save session")
		return
	}
	writeJSON(w, http.StatusOK, gameView(session))
}

func (s *Server) handleConcede(w http.ResponseWriter, r *http.Request) {
	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.Engine.Concede(session)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if err := s.Store.Save(session); err != nil {
		writeError(w, http.StatusInternalServerError, "could not save session")
		return
	}
	writeJSON(w, http.StatusOK, gameView(session))
}

type influenceRequest struct {
	Action   engine.ActionID `json:"action"`
	TargetID string          `json:"target_id"`
}

func (s *Server) handleInfluence(w http.ResponseWriter, r *http.Request) {
	var req influenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	res, err := s.Engine.ApplyInfluence(session, req.Action, req.TargetID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if err := s.Store.Save(session); err != nil {
		writeError(w, http.StatusInternalServerError, "could not save session")
		return
	}
	writeJSON(w, http.StatusOK, newInfluenceView(session, res))
}

func (s *Server) handleParticipant(w http.ResponseWriter, r *http.Request) {
	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	p := roster.FindByID(session.Participants, r.PathValue("pid"))
	if p == nil {
		writeError(w, http.StatusNotFound, "participant not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// loadSession fetches the session named in the path, writing the error
// response itself when it fails.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*engine.Session, bool) {
	session, err := s.Store.Load(r.PathValue("id"))
	if errors.Is(err, persistence.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	if err != nil {
		slog.Error("load session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load session")
		return nil, false
	}
	return session, true
}
