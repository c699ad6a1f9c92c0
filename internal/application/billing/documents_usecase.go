package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// DocumentsUseCase genera el XML UBL y el PDF de una factura del proveedor.
// Las facturas en borrador no se exportan.
type DocumentsUseCase struct {
	xml InvoiceXMLBuilder
	pdf InvoicePDFGenerator
}

// NewDocumentsUseCase construye el caso de uso.
func NewDocumentsUseCase(xml InvoiceXMLBuilder, pdf InvoicePDFGenerator) *DocumentsUseCase {
	return &DocumentsUseCase{xml: xml, pdf: pdf}
}

func (uc *DocumentsUseCase) load(ctx context.Context, src InvoiceSource, invoiceID string) (*entity.Invoice, *entity.Company, *EDocument, error) {
	inv, err := src.Invoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}
	if inv.Status == entity.InvoiceStatusDraft {
		return nil, nil, nil, fmt.Errorf("%w: la factura %s está en borrador", domain.ErrInvalidInput, inv.InvoiceNumber)
	}
	company, err := src.Company(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("documentos: obtener empresa: %w", err)
	}
	doc, err := uc.xml.Build(inv, company)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("documentos: generar XML: %w", err)
	}
	return inv, company, doc, nil
}

// InvoiceXML devuelve el XML UBL, su hash y el nombre de archivo.
func (uc *DocumentsUseCase) InvoiceXML(ctx context.Context, src InvoiceSource, invoiceID string) (*EDocument, string, error) {
	inv, _, doc, err := uc.load(ctx, src, invoiceID)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("invoice_%s.xml", inv.InvoiceNumber), nil
}

// InvoicePDF devuelve el PDF (con QR y hash del XML al pie) y el nombre de archivo.
func (uc *DocumentsUseCase) InvoicePDF(ctx context.Context, src InvoiceSource, invoiceID string) ([]byte, string, error) {
	inv, company, doc, err := uc.load(ctx, src, invoiceID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateInvoicePDF(ctx, inv, company, PDFFooter{QR: doc.QR, Hash: doc.Hash})
	if err != nil {
		return nil, "", fmt.Errorf("documentos: generar PDF: %w", err)
	}
	return out, fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber), nil
}
