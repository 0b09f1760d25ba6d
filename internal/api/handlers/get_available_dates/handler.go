package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
	"github.com/hubtracker/scheduling-service/internal/api/middleware"
	availableDates "github.com/hubtracker/scheduling-service/internal/usecase/get_available_dates"
)

const (
	msgInvalidEquipmentID = "invalid equipment ID"
	msgMissingUserID      = "missing user ID"
	msgEquipmentNotFound  = "equipment not found"
	msgNotSchedulable     = "equipment is not schedulable"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/available-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	equipmentID, err := strconv.ParseInt(vars["equipmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/available-dates - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /equipment/{id}/available-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &availableDates.Request{
		UserID:      userID,
		EquipmentID: equipmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availableDates.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/available-dates - Equipment not found: equipment_id=%d", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, availableDates.ErrEquipmentNotSchedulable):
			h.logger.Warn("GET /equipment/{id}/available-dates - Not schedulable: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgNotSchedulable)

		case errors.Is(err, availableDates.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEquipmentID)

		default:
			h.logger.Error("GET /equipment/{id}/available-dates - Failed: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/available-dates - Returned %d dates: equipment_id=%d",
		len(result.Dates), equipmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
