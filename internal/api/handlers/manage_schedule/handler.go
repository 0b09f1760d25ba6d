package manage_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
	"github.com/hubtracker/scheduling-service/internal/service/schedule"
)

const (
	msgInvalidDayOfWeek   = "invalid day of week, expected 0 (Monday) to 6 (Sunday)"
	msgInvalidBlockedID   = "invalid blocked date ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgHoursNotFound      = "no operating hours set for this day"
	msgBlockedNotFound    = "blocked date not found"
	msgDuplicateDate      = "date is already blocked"
	msgInvalidInput       = "invalid schedule data"
)

// Handler обслуживает административные операции над расписанием.
// Все маршруты защищены middleware.RequireAdmin.
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

// HandleUpsertHours PUT /api/v1/schedule/hours/{dayOfWeek}
func (h *Handler) HandleUpsertHours(w http.ResponseWriter, r *http.Request) {
	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /schedule/hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req UpsertHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertHours(r.Context(), req.ToServiceRequest(dayOfWeek))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/hours/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedule/hours/{day} - Failed: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/hours/{day} - Hours set: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteHours DELETE /api/v1/schedule/hours/{dayOfWeek}
func (h *Handler) HandleDeleteHours(w http.ResponseWriter, r *http.Request) {
	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil {
		h.logger.Warn("DELETE /schedule/hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	if err := h.service.DeleteHours(r.Context(), dayOfWeek); err != nil {
		switch {
		case errors.Is(err, schedule.ErrHoursNotFound):
			h.logger.Warn("DELETE /schedule/hours/{day} - Not found: day=%d", dayOfWeek)
			handlers.RespondNotFound(w, msgHoursNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule/hours/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		default:
			h.logger.Error("DELETE /schedule/hours/{day} - Failed: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/hours/{day} - Day closed: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleAddBlockedDate POST /api/v1/schedule/blocked-dates
func (h *Handler) HandleAddBlockedDate(w http.ResponseWriter, r *http.Request) {
	var req AddBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /schedule/blocked-dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddBlockedDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDuplicateDate):
			h.logger.Warn("POST /schedule/blocked-dates - Duplicate date: %s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateDate)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule/blocked-dates - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/blocked-dates - Blocked: id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleRemoveBlockedDate DELETE /api/v1/schedule/blocked-dates/{blockedDateId}
func (h *Handler) HandleRemoveBlockedDate(w http.ResponseWriter, r *http.Request) {
	blockedDateID, err := strconv.ParseInt(mux.Vars(r)["blockedDateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule/blocked-dates/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedID)
		return
	}

	if err := h.service.RemoveBlockedDate(r.Context(), blockedDateID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /schedule/blocked-dates/{id} - Not found: id=%d", blockedDateID)
			handlers.RespondNotFound(w, msgBlockedNotFound)

		default:
			h.logger.Error("DELETE /schedule/blocked-dates/{id} - Failed: id=%d, error=%v", blockedDateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/blocked-dates/{id} - Removed: id=%d", blockedDateID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUpdatePolicy PUT /api/v1/schedule/policy
func (h *Handler) HandleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePolicy(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/policy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedule/policy - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/policy - Policy updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
