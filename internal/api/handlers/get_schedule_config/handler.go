package get_schedule_config

import (
	"net/http"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/config - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/config - Returned %d weekdays, %d blocked dates",
		len(result.Hours), len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
