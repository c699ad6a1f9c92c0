package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gasable-portal/internal/application/billing"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
)

var _ billing.InvoiceSource = (*portal.Portal)(nil)

// Cabeceras con los datos electrónicos del XML exportado.
const (
	HeaderInvoiceHash = "X-Invoice-Hash"
	HeaderInvoiceQR   = "X-Invoice-QR"
)

// InvoiceHandler detalle y exportación de facturas del proveedor.
type InvoiceHandler struct {
	docs *billing.DocumentsUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(docs *billing.DocumentsUseCase) *InvoiceHandler {
	return &InvoiceHandler{docs: docs}
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  entity.Invoice
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := GetPortal(c).Invoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	out, name, err := h.docs.InvoicePDF(c.UserContext(), GetPortal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(out)
}

// XML godoc
// @Summary      Descargar la factura en XML UBL
// @Tags         invoices
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Header       200  {string}  X-Invoice-Hash  "SHA-256 (base64) del XML canónico"
// @Header       200  {string}  X-Invoice-QR    "QR TLV en base64"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	doc, name, err := h.docs.InvoiceXML(c.UserContext(), GetPortal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set(HeaderInvoiceHash, doc.Hash)
	c.Set(HeaderInvoiceQR, doc.QR)
	return c.Send(doc.XML)
}
