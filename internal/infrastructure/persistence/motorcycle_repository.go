package persistence

import (
	"context"
	"errors"

	"github.com/motodms/backend/internal/domain/inventory"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMotorcycleRepository implements MotorcycleRepository using GORM
type GormMotorcycleRepository struct {
	db *gorm.DB
}

// NewGormMotorcycleRepository creates a new GormMotorcycleRepository
func NewGormMotorcycleRepository(db *gorm.DB) *GormMotorcycleRepository {
	return &GormMotorcycleRepository{db: db}
}

// FindByIDForOrg finds a motorcycle by ID within an organization
func (r *GormMotorcycleRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*inventory.Motorcycle, error) {
	var model models.MotorcycleModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForOrg reports whether a motorcycle exists within an organization
func (r *GormMotorcycleRepository) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MotorcycleModel{}).
		Where("org_id = ? AND id = ?", orgID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a motorcycle
func (r *GormMotorcycleRepository) Save(ctx context.Context, motorcycle *inventory.Motorcycle) error {
	model := models.MotorcycleModelFromDomain(motorcycle)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translatePostgresError(err)
	}
	return nil
}
