package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc     *invoicing.InvoiceUseCase
	export *invoicing.ExportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoicing.InvoiceUseCase, export *invoicing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, export: export}
}

// List GET /api/invoices?q=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetUsername(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InvoiceSummary, 0, len(list))
	for _, inv := range list {
		out = append(out, invoicing.ToSummary(inv))
	}
	return c.JSON(out)
}

// New devuelve un borrador sin guardar.
// GET /api/invoices/new
func (h *InvoiceHandler) New(c *fiber.Ctx) error {
	return c.JSON(h.uc.NewDraft(GetUsername(c)))
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.UserContext(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Save(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Update reemplaza la factura completa; el ID de la ruta manda sobre el del cuerpo.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = c.Params("id")
	inv, err := h.uc.Save(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// ToggleStatus PATCH /api/invoices/:id/status
func (h *InvoiceHandler) ToggleStatus(c *fiber.Ctx) error {
	inv, err := h.uc.ToggleStatus(c.UserContext(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUsername(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	b, filename, err := h.export.DownloadInvoicePDF(c.UserContext(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, b)
}

// PreviewPDF genera el PDF del editor sin guardar.
// POST /api/invoices/preview.pdf
func (h *InvoiceHandler) PreviewPDF(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	b, filename, err := h.export.PreviewInvoicePDF(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, b)
}

// ExportXLSX GET /api/invoices/export.xlsx
func (h *InvoiceHandler) ExportXLSX(c *fiber.Ctx) error {
	b, filename, err := h.export.ExportInvoicesXLSX(c.UserContext(), GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, xlsxContentType, filename, b)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, b []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(b)
}
