package app

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	errori18n "github.com/louisbranch/equinox.space/internal/platform/errors/i18n"
	"github.com/louisbranch/equinox.space/internal/services/game/challenge"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
	"github.com/louisbranch/equinox.space/internal/services/game/storage"
	webi18n "github.com/louisbranch/equinox.space/internal/services/game/web/i18n"
	"github.com/louisbranch/equinox.space/internal/services/game/web/static"
)

// tracerName identifies handler spans emitted by the game service.
const tracerName = "equinox.space/game"

// Handler routes game service requests across the JSON API, the web play
// surface, and the live board stream.
type Handler struct {
	registry  *registry.Registry
	store     storage.SavedGameStore
	challenge *challenge.Config
	tracer    trace.Tracer
	now       func() time.Time
}

// NewHandler builds the game HTTP handler. challengeConfig may be nil when
// grant keys are not configured; the challenge endpoints then report the
// surface as unavailable.
func NewHandler(reg *registry.Registry, store storage.SavedGameStore, challengeConfig *challenge.Config) http.Handler {
	h := &Handler{
		registry:  reg,
		store:     store,
		challenge: challengeConfig,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Web play surface.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))
	mux.HandleFunc("GET /{$}", h.handleHomePage)
	mux.HandleFunc("POST /play", h.handlePlayCreate)
	mux.HandleFunc("GET /play/{id}", h.handlePlayPage)
	mux.Handle("GET /live/{id}", h.liveHandler())

	// JSON API.
	mux.HandleFunc("POST /api/games", h.withSpan("game.create", h.handleCreateGame))
	mux.HandleFunc("GET /api/games/{id}", h.withSpan("game.state", h.handleGameState))
	mux.HandleFunc("POST /api/games/{id}/moves", h.withSpan("game.move", h.handleGameMove))
	mux.HandleFunc("POST /api/games/{id}/undo", h.withSpan("game.undo", h.handleGameUndo))
	mux.HandleFunc("POST /api/games/{id}/redo", h.withSpan("game.redo", h.handleGameRedo))
	mux.HandleFunc("POST /api/games/{id}/hint", h.withSpan("game.hint", h.handleGameHint))
	mux.HandleFunc("POST /api/games/{id}/start", h.withSpan("game.start", h.handleGameStart))
	mux.HandleFunc("POST /api/games/{id}/pause", h.withSpan("game.pause", h.handleGamePause))
	mux.HandleFunc("POST /api/games/{id}/reset", h.withSpan("game.reset", h.handleGameReset))
	mux.HandleFunc("POST /api/games/{id}/new", h.withSpan("game.new", h.handleGameNew))
	mux.HandleFunc("POST /api/games/{id}/save", h.withSpan("game.save", h.handleGameSave))
	mux.HandleFunc("POST /api/games/{id}/load", h.withSpan("game.load", h.handleGameLoad))
	mux.HandleFunc("GET /api/saves", h.withSpan("saves.list", h.handleListSaves))
	mux.HandleFunc("DELETE /api/saves/{id}", h.withSpan("saves.delete", h.handleDeleteSave))
	mux.HandleFunc("POST /api/challenges", h.withSpan("challenge.issue", h.handleIssueChallenge))
	mux.HandleFunc("GET /api/challenges/{grant}", h.withSpan("challenge.accept", h.handleAcceptChallenge))

	return mux
}

// withSpan wraps an API handler in a tracer span. With telemetry disabled
// the global provider is a no-op and the wrapper costs nothing.
func (h *Handler) withSpan(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), name)
		defer span.End()
		next(w, r.WithContext(ctx))
	}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// errorResponse is the JSON error envelope for API routes.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps a domain error to its HTTP status and a message localized
// for the request's resolved language.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	tag, _ := webi18n.ResolveTag(r)
	catalog := errori18n.GetCatalog(tag.String())
	writeJSON(w, code.HTTPStatus(), errorResponse{
		Code:    string(code),
		Message: catalog.Format(string(code), apperrors.GetMetadata(err)),
	})
}
