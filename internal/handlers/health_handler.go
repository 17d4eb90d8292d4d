package handlers

import (
	"context"
	"net/http"
	"time"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/webutil"
)

// Pinger はDBの疎通確認ができるもの (*sql.DB など)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Error("Health check failed", "error", err)
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, model.HealthResponse{Status: "unavailable", Database: "down"}, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.HealthResponse{Status: "ok", Database: "up"}, logger)
}
