package billing

import (
	"context"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// InvoiceSource origen de facturas y del perfil del emisor (demo o real, según la sesión).
type InvoiceSource interface {
	Invoice(ctx context.Context, id string) (*entity.Invoice, error)
	Company(ctx context.Context) (*entity.Company, error)
}

// EDocument factura electrónica exportada: XML UBL, hash canónico y QR TLV.
type EDocument struct {
	XML  []byte
	Hash string
	QR   string
}

// InvoiceXMLBuilder puerto del exportador UBL.
type InvoiceXMLBuilder interface {
	Build(inv *entity.Invoice, seller *entity.Company) (*EDocument, error)
}

// PDFFooter datos electrónicos impresos al pie del PDF.
type PDFFooter struct {
	QR   string
	Hash string
}

// InvoicePDFGenerator puerto del generador de PDF.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, seller *entity.Company, footer PDFFooter) ([]byte, error)
}
