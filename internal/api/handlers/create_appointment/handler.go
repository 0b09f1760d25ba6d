package create_appointment

import (
	"errors"
	"net/http"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
	"github.com/hubtracker/scheduling-service/internal/api/middleware"
	createAppointment "github.com/hubtracker/scheduling-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgEquipmentNotFound  = "equipment not found"
	msgNotSchedulable     = "equipment is not schedulable"
	msgOutsideHours       = "requested time is outside operating hours"
	msgSlotConflict       = "the requested time conflicts with an existing appointment"
	msgMinNotice          = "the appointment does not meet the minimum booking notice"
	msgMaxDuration        = "the appointment exceeds the maximum booking duration"
	msgInvalidInput       = "invalid appointment data"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Роль администратора переключает поток на OperatingHoursOnly: политика
// и признак schedulable не проверяются, рабочие часы и пересечения - всегда
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	strictness := createAppointment.StrictPolicy
	if middleware.IsAdmin(r.Context()) {
		strictness = createAppointment.OperatingHoursOnly
	}

	useCaseReq, parseErr := req.ToUseCaseRequest(userID, strictness)
	if parseErr != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", parseErr.err)
		handlers.RespondBadRequest(w, parseErr.message)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrEquipmentNotFound):
			h.logger.Warn("POST /appointments - Equipment not found: equipment_id=%d", req.EquipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createAppointment.ErrEquipmentNotSchedulable):
			h.logger.Warn("POST /appointments - Not schedulable: equipment_id=%d, user_id=%d", req.EquipmentID, userID)
			handlers.RespondBadRequest(w, msgNotSchedulable)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: equipment_id=%d, user_id=%d", req.EquipmentID, userID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrOutsideOperatingHours):
			h.logger.Warn("POST /appointments - Outside operating hours: equipment_id=%d, user_id=%d", req.EquipmentID, userID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrMinNotice):
			h.logger.Warn("POST /appointments - Min notice violated: equipment_id=%d, user_id=%d", req.EquipmentID, userID)
			handlers.RespondBadRequest(w, msgMinNotice)

		case errors.Is(err, createAppointment.ErrMaxDuration):
			h.logger.Warn("POST /appointments - Max duration exceeded: equipment_id=%d, user_id=%d", req.EquipmentID, userID)
			handlers.RespondBadRequest(w, msgMaxDuration)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: equipment_id=%d, user_id=%d, error=%v",
				req.EquipmentID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, equipment_id=%d, user_id=%d",
		result.ID, req.EquipmentID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
