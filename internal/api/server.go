package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"homestead/internal/config"
	"homestead/internal/game"
)

type contextKey string

const playerContextKey contextKey = "player"

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/players", s.handleCreatePlayer)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(s.playerMiddleware)
			r.Get("/state", s.handleState)
			r.Post("/day/end", s.handleEndDay)
			r.Post("/events/resolve", s.handleResolveEvent)
			r.Post("/actions/{name}", s.handleAction)
		})
	})
}

// playerMiddleware requires the X-Player-ID header and stashes it in the
// request context. There is no credential check; the id is the identity.
func (s *Server) playerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := strings.TrimSpace(r.Header.Get("X-Player-ID"))
		if playerID == "" {
			writeError(w, http.StatusUnauthorized, "missing X-Player-ID header")
			return
		}
		ctx := context.WithValue(r.Context(), playerContextKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(playerContextKey).(string)
	if !ok || id == "" {
		return "", errors.New("missing player context")
	}
	return id, nil
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PlayerID string `json:"player_id"`
		FarmName string `json:"farm_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	playerID := strings.TrimSpace(in.PlayerID)
	if playerID == "" {
		playerID = uuid.NewString()
	}
	state, err := s.game.EnsurePlayer(r.Context(), playerID, in.FarmName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"player_id": playerID,
		"state":     state,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	state, err := s.game.State(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEndDay(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	result, err := s.game.EndDay(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolveEvent(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Choice int `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.ResolveEvent(r.Context(), playerID, in.Choice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var params game.ActionParams
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &params); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	state, message, err := s.game.Act(r.Context(), playerID, chi.URLParam(r, "name"), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"state":   state,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	rows, err := s.game.Leaderboard(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound), errors.Is(err, game.ErrUnknownTarget):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrEventPending), errors.Is(err, game.ErrInvalidChoice),
		errors.Is(err, game.ErrInvalidState), errors.Is(err, game.ErrFieldOccupied):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrInsufficientEnergy),
		errors.Is(err, game.ErrInsufficientFeed), errors.Is(err, game.ErrMissingEquipment),
		errors.Is(err, game.ErrAlreadyDone), errors.Is(err, game.ErrNothingToDo),
		errors.Is(err, game.ErrNotReady), errors.Is(err, game.ErrFlockFull):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
