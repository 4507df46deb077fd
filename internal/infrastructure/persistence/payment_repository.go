package persistence

import (
	"context"
	"errors"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"payment_date": true,
	"amount_paid":  true,
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save creates a payment record. Payments are immutable: Save is insert-only.
func (r *GormPaymentRepository) Save(ctx context.Context, payment *financing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translatePostgresError(err)
	}
	return nil
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount finds payments for one account, newest first by default
func (r *GormPaymentRepository) FindByAccount(ctx context.Context, orgID, accountID uuid.UUID, filter shared.Filter) ([]financing.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("org_id = ? AND account_id = ?", orgID, accountID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "payment_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]financing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// CountByAccount counts payments recorded against one account
func (r *GormPaymentRepository) CountByAccount(ctx context.Context, orgID, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("org_id = ? AND account_id = ?", orgID, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
