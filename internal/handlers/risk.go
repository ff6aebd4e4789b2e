package handlers

import (
	"sentinel/internal/models"
	"sentinel/internal/services/risk"
	"sentinel/internal/utils"
	"sentinel/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type RiskHandler struct {
	riskService *risk.Service
	validator   *validation.Validator
}

func NewRiskHandler(riskService *risk.Service, validator *validation.Validator) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
		validator:   validator,
	}
}

// Assess handles GET and POST /api/risk-assessment. GET scores an empty
// context; POST scores the context in the body.
func (h *RiskHandler) Assess(c *fiber.Ctx) error {
	var input struct {
		Address string  `json:"address" validate:"omitempty,eth_addr"`
		VaultID uint64  `json:"vault_id"`
		Amount  float64 `json:"amount" validate:"gte=0"`
	}
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Invalid request format")
		}
		if err := h.validator.Struct(input); err != nil {
			return utils.BadRequest(c, err.Error())
		}
	}

	report, err := h.riskService.Assess(c.UserContext(), models.RiskContext{
		Address: input.Address,
		VaultID: input.VaultID,
		Amount:  input.Amount,
	})
	if err != nil {
		return utils.InternalError(c, err.Error())
	}
	return utils.Success(c, report)
}

// SimulateProtection handles POST /api/simulate-protection.
func (h *RiskHandler) SimulateProtection(c *fiber.Ctx) error {
	var input struct {
		Vaults    []map[string]interface{} `json:"vaults"`
		RiskScore int                      `json:"risk_score" validate:"gte=0,lte=100"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := h.validator.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{
		"actions": h.riskService.SimulateProtection(input.Vaults, input.RiskScore),
	})
}
