package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountSortFields contains allowed sort fields for current accounts
var AccountSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"start_date":       true,
	"next_due_date":    true,
	"remaining_amount": true,
	"status":           true,
}

// GormCurrentAccountRepository implements CurrentAccountRepository using GORM
type GormCurrentAccountRepository struct {
	db *gorm.DB
}

// NewGormCurrentAccountRepository creates a new GormCurrentAccountRepository
func NewGormCurrentAccountRepository(db *gorm.DB) *GormCurrentAccountRepository {
	return &GormCurrentAccountRepository{db: db}
}

// FindByID finds a current account by its ID
func (r *GormCurrentAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.CurrentAccount, error) {
	var model models.CurrentAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads an account holding a SELECT ... FOR UPDATE row lock.
// Callers must run inside a transaction for the lock to have any effect.
func (r *GormCurrentAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*financing.CurrentAccount, error) {
	var model models.CurrentAccountModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOrg finds a current account by ID within an organization
func (r *GormCurrentAccountRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*financing.CurrentAccount, error) {
	var model models.CurrentAccountModel
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

// FindAllForOrg finds all current accounts for an organization matching the filter
func (r *GormCurrentAccountRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter financing.AccountFilter) ([]financing.CurrentAccount, error) {
	var accountModels []models.CurrentAccountModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CurrentAccountModel{}).Where("org_id = ?", orgID),
		filter,
		true,
	)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]financing.CurrentAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// CountForOrg counts current accounts for an organization matching the filter
func (r *GormCurrentAccountRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter financing.AccountFilter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CurrentAccountModel{}).Where("org_id = ?", orgID),
		filter,
		false,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a current account
func (r *GormCurrentAccountRepository) Save(ctx context.Context, account *financing.CurrentAccount) error {
	model := models.CurrentAccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translatePostgresError(err)
	}
	return nil
}

// applyFilter applies account-specific filters, and pagination plus sorting when paginate is set
func (r *GormCurrentAccountRepository) applyFilter(query *gorm.DB, filter financing.AccountFilter, paginate bool) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Frequency != nil {
		query = query.Where("payment_frequency = ?", *filter.Frequency)
	}
	if filter.DueBefore != nil {
		query = query.Where("next_due_date IS NOT NULL AND next_due_date <= ?", *filter.DueBefore)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("notes ILIKE ?", searchPattern)
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AccountSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
