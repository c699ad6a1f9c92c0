package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

// OrderItem línea de pedido (se guarda como jsonb dentro de orders.items).
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Order pedido de un cliente final a una tienda del proveedor.
type Order struct {
	Tenancy
	StoreID         string          `json:"store_id"`
	BranchID        *string         `json:"branch_id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   *string         `json:"customer_phone"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"` // cash, card, apple_pay, wallet
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	VATAmount       decimal.Decimal `json:"vat_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryAddress *string         `json:"delivery_address"`
	ScheduledAt     *time.Time      `json:"scheduled_at"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	Notes           *string         `json:"notes"`
}

// OrderSummary fila de la vista order_summaries (pedido + nombre de tienda + número de líneas).
type OrderSummary struct {
	Tenancy
	OrderNumber   string          `json:"order_number"`
	StoreID       string          `json:"store_id"`
	StoreName     *string         `json:"store_name"`
	CustomerName  string          `json:"customer_name"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
}
