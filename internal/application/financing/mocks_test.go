package financing

import (
	"context"
	"time"

	domain "github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/inventory"
	"github.com/motodms/backend/internal/domain/partner"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock implementations

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CurrentAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentAccount), args.Error(1)
}

func (m *mockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.CurrentAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentAccount), args.Error(1)
}

func (m *mockAccountRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*domain.CurrentAccount, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentAccount), args.Error(1)
}

func (m *mockAccountRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter domain.AccountFilter) ([]domain.CurrentAccount, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrentAccount), args.Error(1)
}

func (m *mockAccountRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter domain.AccountFilter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepository) Save(ctx context.Context, account *domain.CurrentAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) FindByAccount(ctx context.Context, orgID, accountID uuid.UUID, filter shared.Filter) ([]domain.Payment, error) {
	args := m.Called(ctx, orgID, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) CountByAccount(ctx context.Context, orgID, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *mockClientRepository) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

type mockMotorcycleRepository struct {
	mock.Mock
}

func (m *mockMotorcycleRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*inventory.Motorcycle, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Motorcycle), args.Error(1)
}

func (m *mockMotorcycleRepository) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockMotorcycleRepository) Save(ctx context.Context, motorcycle *inventory.Motorcycle) error {
	args := m.Called(ctx, motorcycle)
	return args.Error(0)
}

// fakeTxManager runs the unit of work directly against the given repositories,
// recording whether the transaction callback returned an error (a rollback).
type fakeTxManager struct {
	repos      TxRepos
	rolledBack bool
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	err := fn(ctx, f.repos)
	if err != nil {
		f.rolledBack = true
	}
	return err
}

type fakeViewInvalidator struct {
	invalidated []string
}

func (f *fakeViewInvalidator) InvalidateAccountViews(_ context.Context, orgID string) {
	f.invalidated = append(f.invalidated, orgID)
}

var fixedStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
