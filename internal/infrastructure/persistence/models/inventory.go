package models

import (
	"github.com/motodms/backend/internal/domain/inventory"
)

// MotorcycleModel is the persistence model for the Motorcycle aggregate root.
type MotorcycleModel struct {
	OrgAggregateModel
	Make         string                     `gorm:"type:varchar(100);not null"`
	Model        string                     `gorm:"type:varchar(100);not null"`
	Year         int                        `gorm:"not null"`
	VIN          string                     `gorm:"type:varchar(30);not null;uniqueIndex"`
	LicensePlate string                     `gorm:"type:varchar(20)"`
	Status       inventory.MotorcycleStatus `gorm:"type:varchar(20);not null;default:'IN_STOCK';index"`
}

// TableName returns the table name for GORM
func (MotorcycleModel) TableName() string {
	return "motorcycles"
}

// ToDomain converts the persistence model to a domain Motorcycle aggregate.
func (m *MotorcycleModel) ToDomain() *inventory.Motorcycle {
	motorcycle := &inventory.Motorcycle{
		Make:         m.Make,
		Model:        m.Model,
		Year:         m.Year,
		VIN:          m.VIN,
		LicensePlate: m.LicensePlate,
		Status:       m.Status,
	}
	m.PopulateOrgAggregateRoot(&motorcycle.OrgAggregateRoot)
	return motorcycle
}

// MotorcycleModelFromDomain creates a persistence model from a domain Motorcycle.
func MotorcycleModelFromDomain(mc *inventory.Motorcycle) *MotorcycleModel {
	m := &MotorcycleModel{
		Make:         mc.Make,
		Model:        mc.Model,
		Year:         mc.Year,
		VIN:          mc.VIN,
		LicensePlate: mc.LicensePlate,
		Status:       mc.Status,
	}
	m.FromDomainOrgAggregateRoot(mc.OrgAggregateRoot)
	return m
}
