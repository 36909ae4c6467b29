package handlers

import (
	"kahera/internal/repositories"
	"kahera/internal/services/report"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	reportService report.Service
	ledgerRepo    repositories.LedgerRepository
}

func NewDashboardHandler(reportService report.Service, ledgerRepo repositories.LedgerRepository) *DashboardHandler {
	return &DashboardHandler{reportService: reportService, ledgerRepo: ledgerRepo}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	stats, err := h.reportService.Dashboard(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to get dashboard stats")
	}

	accounts, err := h.ledgerRepo.ListGcashAccounts(false)
	if err != nil {
		return utils.InternalError(c, "failed to list accounts")
	}

	return utils.Success(c, fiber.Map{
		"stats":          stats,
		"gcash_accounts": accounts,
	})
}
