package persistence

import (
	"context"
	"errors"

	"github.com/motodms/backend/internal/domain/partner"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForOrg finds a client by ID within an organization
func (r *GormClientRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
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

// ExistsForOrg reports whether a client exists within an organization
func (r *GormClientRepository) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("org_id = ? AND id = ?", orgID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	model := models.ClientModelFromDomain(client)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translatePostgresError(err)
	}
	return nil
}
