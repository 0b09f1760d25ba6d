package domain

import "time"

// Equipment represents a lab equipment item
type Equipment struct {
	ID            int64
	Name          string
	Description   *string
	ManualURL     *string
	IsSchedulable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
