package invoicing

import (
	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/pricing"
)

// PricingUseCase cálculo en vivo de una fila para el editor.
type PricingUseCase struct{}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase() *PricingUseCase { return &PricingUseCase{} }

// Compute devuelve tp, precio total por unidad e importe de la fila.
func (PricingUseCase) Compute(in dto.RowRequest) pricing.RowValues {
	return pricing.ComputeRow(in.Rate, in.Qty, in.DiscountPercent)
}
