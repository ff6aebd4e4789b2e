package handlers

import (
	"encoding/json"

	"sentinel/internal/services/timelock"
	"sentinel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TimelockHandler struct {
	timelockService timelock.Service
}

func NewTimelockHandler(timelockService timelock.Service) *TimelockHandler {
	return &TimelockHandler{
		timelockService: timelockService,
	}
}

// ExtendTimelock handles POST /api/extend_timelock.
func (h *TimelockHandler) ExtendTimelock(c *fiber.Ctx) error {
	var input struct {
		VaultID        json.RawMessage `json:"vault_id"`
		AdditionalDays json.RawMessage `json:"additional_days"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Invalid request format")
		}
	}

	vaultID, err := parseUint(input.VaultID, "vault_id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	days, err := parseInt(input.AdditionalDays, "additional_days")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	res, err := h.timelockService.ExtendTimelock(c.UserContext(), timelock.ExtendRequest{
		VaultID:        vaultID,
		AdditionalDays: days,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"success":          true,
		"transaction_hash": res.TransactionHash.Hex(),
		"message":          res.Message(),
	})
}
