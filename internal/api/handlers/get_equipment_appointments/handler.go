package get_equipment_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
	"github.com/hubtracker/scheduling-service/internal/service/appointments"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

const (
	msgInvalidEquipmentID = "invalid equipment ID"
	msgInvalidParams      = "invalid query parameters"
)

type Handler struct {
	service   AppointmentService
	converter *localtime.Converter
	logger    Logger
}

func NewHandler(service AppointmentService, converter *localtime.Converter, logger Logger) *Handler {
	return &Handler{
		service:   service,
		converter: converter,
		logger:    logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/appointments
// Query params: from, to, status, includeInactive (все опциональны).
// Маршрут защищен middleware.RequireAdmin.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	equipmentID, err := strconv.ParseInt(vars["equipmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/appointments - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		equipmentID,
		h.converter,
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetEquipmentAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{id}/appointments - Invalid filter: equipment_id=%d", equipmentID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /equipment/{id}/appointments - Failed: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/appointments - Returned %d appointments: equipment_id=%d",
		len(result.Appointments), equipmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
