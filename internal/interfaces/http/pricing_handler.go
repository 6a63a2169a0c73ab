package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
)

// PricingHandler cálculo en vivo de filas para el editor.
type PricingHandler struct {
	uc *invoicing.PricingUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *invoicing.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// ComputeRow POST /api/pricing/row
func (h *PricingHandler) ComputeRow(c *fiber.Ctx) error {
	var in dto.RowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.Compute(in))
}
