package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
	"github.com/hubtracker/scheduling-service/internal/api/middleware"
	availableSlots "github.com/hubtracker/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidEquipmentID = "invalid equipment ID"
	msgMissingUserID      = "missing user ID"
	msgMissingDate        = "missing date parameter, expected YYYY-MM-DD"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStartTime   = "invalid startTime format, expected HH:MM"
	msgEquipmentNotFound  = "equipment not found"
	msgNotSchedulable     = "equipment is not schedulable"
	msgDateInPast         = "date is in the past"
	msgDateTooFar         = "date is beyond the advance booking limit"
	msgDateBlocked        = "date is blocked for booking"
	msgClosedOnDate       = "the hub is closed on this date"
	msgStartOutsideHours  = "startTime is outside operating hours"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/available-slots
// Query params: date (обязательно), startTime (опционально - режим окончаний)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	equipmentID, err := strconv.ParseInt(vars["equipmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/available-slots - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /equipment/{id}/available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, parseErr := ToUseCaseRequest(userID, equipmentID, r.URL.Query().Get("date"), r.URL.Query().Get("startTime"))
	if parseErr != nil {
		h.logger.Warn("GET /equipment/{id}/available-slots - Invalid parameters: %v", parseErr.err)
		handlers.RespondBadRequest(w, parseErr.message)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, availableSlots.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/available-slots - Equipment not found: equipment_id=%d", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, availableSlots.ErrEquipmentNotSchedulable):
			h.logger.Warn("GET /equipment/{id}/available-slots - Not schedulable: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgNotSchedulable)

		case errors.Is(err, availableSlots.ErrInvalidDate):
			h.logger.Warn("GET /equipment/{id}/available-slots - Date in past: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, availableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /equipment/{id}/available-slots - Date too far: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, availableSlots.ErrDateBlocked):
			h.logger.Warn("GET /equipment/{id}/available-slots - Date blocked: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, availableSlots.ErrClosedOnDate):
			h.logger.Warn("GET /equipment/{id}/available-slots - Closed on date: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgClosedOnDate)

		case errors.Is(err, availableSlots.ErrInvalidStartTime):
			h.logger.Warn("GET /equipment/{id}/available-slots - Invalid start time: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgStartOutsideHours)

		case errors.Is(err, availableSlots.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /equipment/{id}/available-slots - Failed: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/available-slots - Returned %d slots: equipment_id=%d",
		len(result.Slots), equipmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
