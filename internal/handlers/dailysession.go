package handlers

import (
	"time"

	"kahera/internal/services/dailysession"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type DailySessionHandler struct {
	sessionService dailysession.Service
}

func NewDailySessionHandler(sessionService dailysession.Service) *DailySessionHandler {
	return &DailySessionHandler{sessionService: sessionService}
}

// Continue carries yesterday's closing balances into today's session.
// Safe to call repeatedly; the first snapshot for a date wins.
func (h *DailySessionHandler) Continue(c *fiber.Ctx) error {
	session, err := h.sessionService.ContinuePrevious(c.Context(), today())
	if err != nil {
		return utils.InternalError(c, "failed to continue session")
	}
	return utils.Success(c, fiber.Map{"session": session})
}

// Start resets today's books to zero for a new cycle.
func (h *DailySessionHandler) Start(c *fiber.Ctx) error {
	session, err := h.sessionService.StartFresh(c.Context(), today())
	if err != nil {
		return utils.InternalError(c, "failed to start session")
	}
	return utils.Success(c, fiber.Map{"session": session})
}

// Reset opens today's session with an explicit starting cash amount.
func (h *DailySessionHandler) Reset(c *fiber.Ctx) error {
	var input struct {
		StartingCash decimal.Decimal `json:"starting_cash"`
		Notes        string          `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	session, err := h.sessionService.ResetWithAmount(c.Context(), today(), input.StartingCash, input.Notes)
	if err != nil {
		if err == dailysession.ErrInvalidStartingCash {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to reset session")
	}
	return utils.Success(c, fiber.Map{"session": session})
}

func today() string {
	return time.Now().Format(dateLayout)
}
