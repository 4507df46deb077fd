package financing

import (
	"context"
	"errors"
	"testing"

	domain "github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validCreateInput() CreateAccountInput {
	return CreateAccountInput{
		OrgID:                uuid.New(),
		ClientID:             uuid.New(),
		MotorcycleID:         uuid.New(),
		TotalAmount:          decimal.NewFromInt(15000),
		DownPayment:          decimal.NewFromInt(3000),
		NumberOfInstallments: 12,
		PaymentFrequency:     domain.FrequencyMonthly,
		InterestRate:         decimal.Zero,
		StartDate:            fixedStart,
		Currency:             valueobject.USD,
	}
}

func newAccountServiceFixture() (*AccountService, *mockAccountRepository, *mockClientRepository, *mockMotorcycleRepository, *fakeViewInvalidator) {
	accounts := new(mockAccountRepository)
	clients := new(mockClientRepository)
	motorcycles := new(mockMotorcycleRepository)
	views := &fakeViewInvalidator{}
	svc := NewAccountService(accounts, clients, motorcycles, views, zap.NewNop())
	return svc, accounts, clients, motorcycles, views
}

func TestAccountService_CreateAccount(t *testing.T) {
	svc, accounts, clients, motorcycles, views := newAccountServiceFixture()
	input := validCreateInput()

	clients.On("ExistsForOrg", mock.Anything, input.OrgID, input.ClientID).Return(true, nil)
	motorcycles.On("ExistsForOrg", mock.Anything, input.OrgID, input.MotorcycleID).Return(true, nil)
	accounts.On("Save", mock.Anything, mock.AnythingOfType("*financing.CurrentAccount")).Return(nil)

	account, err := svc.CreateAccount(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12000).Equal(account.RemainingAmount))
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.Equal(t, []string{input.OrgID.String()}, views.invalidated)
	accounts.AssertExpectations(t)
}

func TestAccountService_CreateAccount_InvalidTermsSkipRepos(t *testing.T) {
	svc, accounts, clients, _, views := newAccountServiceFixture()
	input := validCreateInput()
	input.DownPayment = decimal.NewFromInt(20000)
	input.NumberOfInstallments = 0

	_, err := svc.CreateAccount(context.Background(), input)

	require.Error(t, err)
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "down_payment")
	assert.Contains(t, verr.Fields, "number_of_installments")
	// validation fails before any repository access
	clients.AssertNotCalled(t, "ExistsForOrg", mock.Anything, mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, views.invalidated)
}

func TestAccountService_CreateAccount_ClientNotFound(t *testing.T) {
	svc, accounts, clients, _, _ := newAccountServiceFixture()
	input := validCreateInput()

	clients.On("ExistsForOrg", mock.Anything, input.OrgID, input.ClientID).Return(false, nil)

	_, err := svc.CreateAccount(context.Background(), input)

	require.Error(t, err)
	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "CLIENT_NOT_FOUND", derr.Code)
	accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccountService_CreateAccount_MotorcycleNotFound(t *testing.T) {
	svc, accounts, clients, motorcycles, _ := newAccountServiceFixture()
	input := validCreateInput()

	clients.On("ExistsForOrg", mock.Anything, input.OrgID, input.ClientID).Return(true, nil)
	motorcycles.On("ExistsForOrg", mock.Anything, input.OrgID, input.MotorcycleID).Return(false, nil)

	_, err := svc.CreateAccount(context.Background(), input)

	require.Error(t, err)
	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "MOTORCYCLE_NOT_FOUND", derr.Code)
	accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccountService_CreateAccount_MismatchedInstallmentStillPersists(t *testing.T) {
	svc, accounts, clients, motorcycles, _ := newAccountServiceFixture()
	input := validCreateInput()
	input.InstallmentAmount = decimal.NewFromInt(900) // 900 * 12 != 12000

	clients.On("ExistsForOrg", mock.Anything, input.OrgID, input.ClientID).Return(true, nil)
	motorcycles.On("ExistsForOrg", mock.Anything, input.OrgID, input.MotorcycleID).Return(true, nil)
	accounts.On("Save", mock.Anything, mock.AnythingOfType("*financing.CurrentAccount")).Return(nil)

	account, err := svc.CreateAccount(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(account.InstallmentAmount))
	accounts.AssertExpectations(t)
}

func TestAccountService_CreateAccount_SaveFailure(t *testing.T) {
	svc, accounts, clients, motorcycles, views := newAccountServiceFixture()
	input := validCreateInput()

	clients.On("ExistsForOrg", mock.Anything, input.OrgID, input.ClientID).Return(true, nil)
	motorcycles.On("ExistsForOrg", mock.Anything, input.OrgID, input.MotorcycleID).Return(true, nil)
	accounts.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.CreateAccount(context.Background(), input)

	require.Error(t, err)
	assert.Empty(t, views.invalidated)
}

func TestAccountService_GetAccount(t *testing.T) {
	svc, accounts, _, _, _ := newAccountServiceFixture()
	orgID := uuid.New()

	account, err := domain.NewCurrentAccount(orgID, uuid.New(), uuid.New(), domain.AccountTerms{
		TotalAmount:          decimal.NewFromInt(8000),
		DownPayment:          decimal.NewFromInt(2000),
		NumberOfInstallments: 6,
		PaymentFrequency:     domain.FrequencyBiweekly,
		StartDate:            fixedStart,
	})
	require.NoError(t, err)

	accounts.On("FindByIDForOrg", mock.Anything, orgID, account.ID).Return(account, nil)

	found, err := svc.GetAccount(context.Background(), orgID, account.ID)

	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
}

func TestAccountService_GetAccount_NotFound(t *testing.T) {
	svc, accounts, _, _, _ := newAccountServiceFixture()
	orgID := uuid.New()
	accountID := uuid.New()

	accounts.On("FindByIDForOrg", mock.Anything, orgID, accountID).Return(nil, nil)

	_, err := svc.GetAccount(context.Background(), orgID, accountID)

	require.Error(t, err)
	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "ACCOUNT_NOT_FOUND", derr.Code)
}

func TestAccountService_ListAccounts(t *testing.T) {
	svc, accounts, _, _, _ := newAccountServiceFixture()
	orgID := uuid.New()
	filter := domain.AccountFilter{Filter: shared.DefaultFilter()}

	accounts.On("FindAllForOrg", mock.Anything, orgID, filter).Return([]domain.CurrentAccount{{}, {}}, nil)
	accounts.On("CountForOrg", mock.Anything, orgID, filter).Return(int64(42), nil)

	page, err := svc.ListAccounts(context.Background(), orgID, filter)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(42), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
