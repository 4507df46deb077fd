package inventory

import (
	"context"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MotorcycleStatus is set by the inventory workflow. The financing core never
// drives these transitions; it only needs the unit to exist.
type MotorcycleStatus string

const (
	MotorcycleStatusInStock  MotorcycleStatus = "IN_STOCK"
	MotorcycleStatusReserved MotorcycleStatus = "RESERVED"
	MotorcycleStatusSold     MotorcycleStatus = "SOLD"
)

// Motorcycle represents a unit in the dealership inventory
type Motorcycle struct {
	shared.OrgAggregateRoot
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Year         int              `json:"year"`
	VIN          string           `json:"vin"`
	LicensePlate string           `json:"license_plate,omitempty"`
	Status       MotorcycleStatus `json:"status"`
}

// NewMotorcycle creates a new motorcycle record
func NewMotorcycle(orgID uuid.UUID, make, model string, year int, vin string) (*Motorcycle, error) {
	if make == "" || model == "" {
		return nil, shared.NewDomainError("INVALID_MOTORCYCLE", "Make and model are required")
	}
	if vin == "" {
		return nil, shared.NewDomainError("INVALID_VIN", "VIN cannot be empty")
	}
	return &Motorcycle{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Make:             make,
		Model:            model,
		Year:             year,
		VIN:              vin,
		Status:           MotorcycleStatusInStock,
	}, nil
}

// MotorcycleRepository defines the read-side lookups account origination depends on
type MotorcycleRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Motorcycle, error)
	ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error)
	Save(ctx context.Context, motorcycle *Motorcycle) error
}
