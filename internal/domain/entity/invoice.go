package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceItem línea de factura (jsonb en invoices.items).
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"` // porcentaje, ej. 15
	Total       decimal.Decimal `json:"total"`
}

// Invoice factura emitida por el proveedor (IVA Arabia Saudita, moneda SAR).
type Invoice struct {
	Tenancy
	OrderID           *string         `json:"order_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	Status            string          `json:"status"`
	CustomerName      string          `json:"customer_name"`
	CustomerVATNumber *string         `json:"customer_vat_number"`
	Items             []InvoiceItem   `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Currency          string          `json:"currency"`
	IssuedAt          time.Time       `json:"issued_at"`
	DueDate           *time.Time      `json:"due_date"`
	PaidAt            *time.Time      `json:"paid_at"`
}
