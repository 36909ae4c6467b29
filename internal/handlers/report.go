package handlers

import (
	"time"

	"kahera/internal/services/report"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the per-date summary joined with that date's session.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date := c.Query("date", today())
	if _, err := time.Parse(dateLayout, date); err != nil {
		return utils.BadRequest(c, "date must be YYYY-MM-DD")
	}

	daily, err := h.reportService.DailyReport(c.Context(), date)
	if err != nil {
		return utils.InternalError(c, "failed to build daily report")
	}
	return utils.Success(c, daily)
}
