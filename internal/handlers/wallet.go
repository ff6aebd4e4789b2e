package handlers

import (
	"sentinel/internal/models"
	"sentinel/internal/utils"
	"sentinel/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// Demo data until vault reads go through the contract.
const mockWalletAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

type WalletHandler struct {
	validator *validation.Validator
}

func NewWalletHandler(validator *validation.Validator) *WalletHandler {
	return &WalletHandler{validator: validator}
}

// GetWalletData handles POST /api/wallet_data.
func (h *WalletHandler) GetWalletData(c *fiber.Ctx) error {
	var input struct {
		Address string `json:"address" validate:"required"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Invalid request format")
		}
	}
	if err := h.validator.Struct(input); err != nil {
		return utils.BadRequest(c, "Missing wallet address")
	}

	return utils.Success(c, models.WalletData{
		Address:   input.Address,
		Balance:   2500,
		Protected: 1250,
		Vaults: []models.VaultSummary{
			{ID: 1, Amount: 1000, UnlockDays: 12, Status: "Protected"},
			{ID: 2, Amount: 250, UnlockDays: 5, Status: "Protected"},
		},
	})
}

// MockWallet handles POST /api/mock_wallet.
func (h *WalletHandler) MockWallet(c *fiber.Ctx) error {
	return utils.Success(c, models.MockWallet{
		Connected: true,
		Address:   mockWalletAddress,
		Network:   "Ethereum Testnet",
		Balance:   "10.5 ETH",
	})
}
