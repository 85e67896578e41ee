package http

import (
	"net/http"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/utils"
	"github.com/sixpath/sixpath-server/models"
)

// health probes database connectivity by counting person records. A failing
// probe yields 503 so load balancers can pull the instance out of rotation.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	count, err := h.services.PersonService.Count(ctx)
	if err != nil {
		log.Err(err).Msg("health check failed")
		utils.WriteJSON(w, models.HealthResponse{
			Status:   "unhealthy",
			Database: "error",
			Error:    err.Error(),
		}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, models.HealthResponse{
		Status:     "ok",
		Database:   "connected",
		UsersCount: count,
	}, http.StatusOK)
}
