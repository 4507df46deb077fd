package handler

import (
	"time"

	appfinancing "github.com/motodms/backend/internal/application/financing"
	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/domain/shared/valueobject"
	"github.com/motodms/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancingHandler handles current account and payment API endpoints
type FinancingHandler struct {
	BaseHandler
	accountService *appfinancing.AccountService
	paymentService *appfinancing.PaymentService
}

// NewFinancingHandler creates a new FinancingHandler
func NewFinancingHandler(accountService *appfinancing.AccountService, paymentService *appfinancing.PaymentService) *FinancingHandler {
	return &FinancingHandler{
		accountService: accountService,
		paymentService: paymentService,
	}
}

// CreateAccountRequest represents a request to originate a financed sale
type CreateAccountRequest struct {
	ClientID             string    `json:"client_id" binding:"required,uuid"`
	MotorcycleID         string    `json:"motorcycle_id" binding:"required,uuid"`
	TotalAmount          float64   `json:"total_amount" binding:"gte=0"`
	DownPayment          float64   `json:"down_payment" binding:"omitempty,gte=0"`
	NumberOfInstallments int       `json:"number_of_installments" binding:"required,gte=1"`
	InstallmentAmount    *float64  `json:"installment_amount" binding:"omitempty,gt=0"`
	PaymentFrequency     string    `json:"payment_frequency" binding:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY QUARTERLY ANNUALLY"`
	InterestRate         float64   `json:"interest_rate" binding:"omitempty,gte=0"`
	StartDate            time.Time `json:"start_date" binding:"required"`
	Status               string    `json:"status" binding:"omitempty"`
	Currency             string    `json:"currency" binding:"omitempty,len=3"`
	ReminderLeadTimeDays int       `json:"reminder_lead_time_days" binding:"omitempty,gte=0"`
	Notes                string    `json:"notes"`
}

// RecordPaymentRequest represents a request to record a payment against an account
type RecordPaymentRequest struct {
	Amount               float64    `json:"amount" binding:"required,gt=0"`
	PaymentDate          *time.Time `json:"payment_date"`
	PaymentMethod        string     `json:"payment_method" binding:"omitempty,oneof=CASH TRANSFER CARD CHECK OTHER"`
	TransactionReference string     `json:"transaction_reference" binding:"max=100"`
	Notes                string     `json:"notes"`
	IsDownPayment        bool       `json:"is_down_payment"`
}

// ListAccountsRequest represents query parameters for the account listing
type ListAccountsRequest struct {
	dto.ListRequest
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	Status    string `form:"status"`
	Frequency string `form:"frequency" binding:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY QUARTERLY ANNUALLY"`
	DueBefore string `form:"due_before" binding:"omitempty,datetime=2006-01-02"`
}

// Create originates a new current account for a financed sale
func (h *FinancingHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}
	motorcycleID, err := uuid.Parse(req.MotorcycleID)
	if err != nil {
		h.BadRequest(c, "Invalid motorcycle ID format")
		return
	}

	input := appfinancing.CreateAccountInput{
		OrgID:                orgID,
		ClientID:             clientID,
		MotorcycleID:         motorcycleID,
		TotalAmount:          decimal.NewFromFloat(req.TotalAmount),
		DownPayment:          decimal.NewFromFloat(req.DownPayment),
		NumberOfInstallments: req.NumberOfInstallments,
		PaymentFrequency:     financing.PaymentFrequency(req.PaymentFrequency),
		InterestRate:         decimal.NewFromFloat(req.InterestRate),
		StartDate:            req.StartDate,
		Status:               financing.AccountStatus(req.Status),
		Currency:             valueobject.Currency(req.Currency),
		ReminderLeadTimeDays: req.ReminderLeadTimeDays,
		Notes:                req.Notes,
	}
	if req.InstallmentAmount != nil {
		input.InstallmentAmount = decimal.NewFromFloat(*req.InstallmentAmount)
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetByID retrieves a current account by its ID
func (h *FinancingHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), orgID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// List retrieves current accounts with filters and pagination
func (h *FinancingHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.Normalize()

	filter := financing.AccountFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.ClientID != "" {
		clientID, _ := uuid.Parse(req.ClientID)
		filter.ClientID = &clientID
	}
	if req.Status != "" {
		status := financing.AccountStatus(req.Status)
		filter.Status = &status
	}
	if req.Frequency != "" {
		frequency := financing.PaymentFrequency(req.Frequency)
		filter.Frequency = &frequency
	}
	if req.DueBefore != "" {
		dueBefore, _ := time.Parse("2006-01-02", req.DueBefore)
		filter.DueBefore = &dueBefore
	}

	page, err := h.accountService.ListAccounts(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// RecordPayment records a payment against an account
func (h *FinancingHandler) RecordPayment(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appfinancing.RecordPaymentInput{
		OrgID:                orgID,
		AccountID:            accountID,
		Amount:               decimal.NewFromFloat(req.Amount),
		PaymentDate:          req.PaymentDate,
		PaymentMethod:        financing.PaymentMethod(req.PaymentMethod),
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
		IsDownPayment:        req.IsDownPayment,
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments retrieves the payment history of an account
func (h *FinancingHandler) ListPayments(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	page, err := h.paymentService.ListPayments(c.Request.Context(), orgID, accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// RegisterRoutes registers financing routes on the API group
func (h *FinancingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/financing/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.GetByID)
		accounts.POST("/:id/payments", h.RecordPayment)
		accounts.GET("/:id/payments", h.ListPayments)
	}
}
