package handlers

import (
	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/services/fees"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SettingsHandler struct {
	feeService fees.Service
	ledgerRepo repositories.LedgerRepository
}

func NewSettingsHandler(feeService fees.Service, ledgerRepo repositories.LedgerRepository) *SettingsHandler {
	return &SettingsHandler{feeService: feeService, ledgerRepo: ledgerRepo}
}

func (h *SettingsHandler) GetFees(c *fiber.Ctx) error {
	rates, err := h.feeService.GetRates(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to load fee settings")
	}
	return utils.Success(c, fiber.Map{"fee_settings": rates})
}

func (h *SettingsHandler) UpdateFees(c *fiber.Ctx) error {
	var input fees.UpdateRatesRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	rates, err := h.feeService.UpdateRates(c.Context(), input)
	if err != nil {
		if err == fees.ErrInvalidRate {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to update fee settings")
	}
	return utils.Success(c, fiber.Map{"fee_settings": rates})
}

func (h *SettingsHandler) ListGcashAccounts(c *fiber.Ctx) error {
	accounts, err := h.ledgerRepo.ListGcashAccounts(false)
	if err != nil {
		return utils.InternalError(c, "failed to list accounts")
	}
	return utils.Success(c, fiber.Map{"accounts": accounts})
}

func (h *SettingsHandler) CreateGcashAccount(c *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Name == "" || len(input.Name) > 100 {
		return utils.BadRequest(c, "name is required and must be at most 100 characters")
	}

	account := &models.GcashAccount{
		Name:     input.Name,
		Balance:  decimal.Zero,
		IsActive: true,
	}
	if err := h.ledgerRepo.CreateGcashAccount(account); err != nil {
		return utils.InternalError(c, "failed to create account")
	}
	return utils.Created(c, fiber.Map{"account": account})
}

func (h *SettingsHandler) UpdateGcashAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "invalid account id")
	}

	var input struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Name == "" || input.IsActive == nil {
		return utils.BadRequest(c, "name and is_active are required")
	}

	account, err := h.ledgerRepo.GetGcashAccount(uint(id))
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return utils.NotFound(c, "account not found")
		}
		return utils.InternalError(c, "failed to get account")
	}

	account.Name = input.Name
	account.IsActive = *input.IsActive
	if err := h.ledgerRepo.UpdateGcashAccount(account); err != nil {
		return utils.InternalError(c, "failed to update account")
	}
	return utils.Success(c, fiber.Map{"account": account})
}

// DeleteGcashAccount removes an account that has no ledger history.
// Accounts with transactions must be deactivated instead.
func (h *SettingsHandler) DeleteGcashAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "invalid account id")
	}

	switch err := h.ledgerRepo.DeleteGcashAccount(uint(id)); err {
	case nil:
		return utils.Success(c, fiber.Map{"message": "account deleted"})
	case repositories.ErrAccountNotFound:
		return utils.NotFound(c, "account not found")
	case repositories.ErrAccountHasHistory:
		return utils.Conflict(c, "cannot delete account with existing transactions; set it inactive instead")
	default:
		return utils.InternalError(c, "failed to delete account")
	}
}
