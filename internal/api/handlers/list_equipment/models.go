package list_equipment

import "github.com/hubtracker/scheduling-service/internal/domain"

// EquipmentResponse HTTP response model
type EquipmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	ManualURL     *string `json:"manualUrl,omitempty"`
	IsSchedulable bool    `json:"isSchedulable"`
}

// EquipmentListResponse HTTP response со списком оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// FromDomainList конвертирует domain модели в HTTP response
func FromDomainList(equipment []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(equipment)),
	}

	for _, eq := range equipment {
		resp.Equipment = append(resp.Equipment, EquipmentResponse{
			ID:            eq.ID,
			Name:          eq.Name,
			Description:   eq.Description,
			ManualURL:     eq.ManualURL,
			IsSchedulable: eq.IsSchedulable,
		})
	}

	return resp
}
