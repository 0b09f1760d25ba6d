package list_equipment

import (
	"net/http"
	"strconv"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
)

const (
	msgInvalidParams = "invalid query parameters"
)

type Handler struct {
	equipmentRepo EquipmentRepository
	logger        Logger
}

func NewHandler(equipmentRepo EquipmentRepository, logger Logger) *Handler {
	return &Handler{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// Handle GET /api/v1/equipment
// Query params: all (опционально, по умолчанию только schedulable)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedulableOnly := true
	if allStr := r.URL.Query().Get("all"); allStr != "" {
		all, err := strconv.ParseBool(allStr)
		if err != nil {
			h.logger.Warn("GET /equipment - Invalid 'all' parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		schedulableOnly = !all
	}

	equipment, err := h.equipmentRepo.List(r.Context(), schedulableOnly)
	if err != nil {
		h.logger.Error("GET /equipment - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /equipment - Returned %d items", len(equipment))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(equipment))
}
