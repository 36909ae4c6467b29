package handlers

import (
	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/services/fees"
	"kahera/internal/services/ledger"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	ledgerService ledger.Service
	feeService    fees.Service
	ledgerRepo    repositories.LedgerRepository
}

func NewTransactionHandler(ledgerService ledger.Service, feeService fees.Service, ledgerRepo repositories.LedgerRepository) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		feeService:    feeService,
		ledgerRepo:    ledgerRepo,
	}
}

type transactionInput struct {
	Type           string          `json:"type"`
	GcashAccountID uint            `json:"gcash_account_id"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Amount         decimal.Decimal `json:"amount"`
	Discounted     bool            `json:"discounted"`
	Reference      string          `json:"reference"`
	ReceiverName   string          `json:"receiver_name"`
	Remarks        string          `json:"remarks"`
}

// Create records a cash_in, cash_out or capital_move. Capital moves are
// admin-only; the router enforces roles, this handler dispatches types.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input transactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	var (
		tx  *models.Transaction
		err error
	)
	switch input.Type {
	case models.TransactionTypeCashIn:
		tx, err = h.ledgerService.CashIn(c.Context(), cashRequest(input))
	case models.TransactionTypeCashOut:
		tx, err = h.ledgerService.CashOut(c.Context(), cashRequest(input))
	case models.TransactionTypeCapitalMove:
		claims, cerr := utils.GetUserClaims(c)
		if cerr != nil || !claims.IsAdmin() {
			return utils.Forbidden(c, "capital moves require admin role")
		}
		tx, err = h.ledgerService.MoveCapital(c.Context(), ledger.MoveCapitalRequest{
			From:      input.From,
			To:        input.To,
			Amount:    input.Amount,
			Reference: input.Reference,
			Remarks:   input.Remarks,
		})
	default:
		return utils.BadRequest(c, "type must be cash_in, cash_out or capital_move")
	}
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

// CreateAdjustment records a one-sided correction entry.
func (h *TransactionHandler) CreateAdjustment(c *fiber.Ctx) error {
	var input ledger.AdjustRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Remarks == "" {
		return utils.BadRequest(c, "remarks are required for adjustments")
	}

	tx, err := h.ledgerService.Adjust(c.Context(), input)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Created(c, fiber.Map{"transaction": tx})
}

// History lists transactions with type/account/date/search filters.
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	filter := repositories.TransactionFilter{
		Type:     c.Query("type"),
		Account:  c.Query("account"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	txs, total, err := h.ledgerRepo.ListTransactions(c.Context(), filter)
	if err != nil {
		return utils.InternalError(c, "failed to list transactions")
	}

	return utils.Success(c, fiber.Map{
		"transactions": txs,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// FormData returns what the entry form needs: active accounts and current
// fee rates for the client-side fee preview.
func (h *TransactionHandler) FormData(c *fiber.Ctx) error {
	accounts, err := h.ledgerRepo.ListGcashAccounts(true)
	if err != nil {
		return utils.InternalError(c, "failed to list accounts")
	}
	rates, err := h.feeService.GetRates(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to load fee settings")
	}

	return utils.Success(c, fiber.Map{
		"gcash_accounts": accounts,
		"fee_settings":   rates,
	})
}

func cashRequest(input transactionInput) ledger.CashRequest {
	return ledger.CashRequest{
		GcashAccountID: input.GcashAccountID,
		Amount:         input.Amount,
		Discounted:     input.Discounted,
		Reference:      input.Reference,
		ReceiverName:   input.ReceiverName,
		Remarks:        input.Remarks,
	}
}

func ledgerError(c *fiber.Ctx, err error) error {
	switch err {
	case ledger.ErrInvalidAmount, ledger.ErrMissingGcashAccount,
		ledger.ErrInvalidTarget, ledger.ErrInvalidDirection:
		return utils.BadRequest(c, err.Error())
	case ledger.ErrAccountNotFound:
		return utils.NotFound(c, err.Error())
	default:
		return utils.InternalError(c, "transaction failed")
	}
}
