package handlers

import (
	"bufio"
	"fmt"
	"log"
	"time"

	"kahera/internal/repositories"
	"kahera/internal/services/export"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Transactions downloads the filtered transaction log as CSV. The body is
// streamed; a query failure after the header is sent can only cut the
// stream short, so it is logged rather than returned.
func (h *ExportHandler) Transactions(c *fiber.Ctx) error {
	filter := repositories.TransactionFilter{
		Type:     c.Query("type"),
		Account:  c.Query("account"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Search:   c.Query("search"),
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)

	svc := h.exportService
	ctx := c.Context()
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := svc.WriteTransactionsCSV(ctx, w, filter); err != nil {
			log.Printf("transactions export aborted: %v", err)
		}
	})
	return nil
}

// Daily downloads the daily report CSV with its summary block.
func (h *ExportHandler) Daily(c *fiber.Ctx) error {
	date := c.Query("date", time.Now().Format(dateLayout))
	if _, err := time.Parse(dateLayout, date); err != nil {
		return utils.BadRequest(c, "date must be YYYY-MM-DD")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="daily-report-%s.csv"`, date))

	svc := h.exportService
	ctx := c.Context()
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := svc.WriteDailyReportCSV(ctx, w, date); err != nil {
			log.Printf("daily report export aborted: %v", err)
		}
	})
	return nil
}
