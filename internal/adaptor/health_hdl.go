package adaptor

import (
	"context"
	"net/http"
	"time"

	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
	log  *zap.Logger
}

func NewHealthHandler(ping func(ctx context.Context) error, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		ping: ping,
		log:  log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.Error("Store unreachable", zap.Error(err))
		utils.ResponseError(w, http.StatusServiceUnavailable, "Store unreachable", nil)
		return
	}

	utils.ResponseSuccess(w, "OK", nil)
}
