package handlers

import (
	"context"
	"time"

	"sentinel/internal/chain"

	"github.com/gofiber/fiber/v2"
)

const healthProbeTimeout = 5 * time.Second

type HealthHandler struct {
	dialer   chain.Dialer
	readOnly bool
}

func NewHealthHandler(dialer chain.Dialer, readOnly bool) *HealthHandler {
	return &HealthHandler{dialer: dialer, readOnly: readOnly}
}

// HealthCheck probes the node and reports whether transactions can be signed.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthProbeTimeout)
	defer cancel()

	node := fiber.Map{"connected": false}
	status := "ok"
	code := fiber.StatusOK

	backend, err := h.dialer.Dial(ctx)
	if err == nil {
		defer backend.Close()
		var block uint64
		block, err = backend.BlockNumber(ctx)
		if err == nil {
			node["connected"] = true
			node["block_number"] = block
		}
	}
	if err != nil {
		node["error"] = err.Error()
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"read_only": h.readOnly,
		"node":      node,
	})
}
