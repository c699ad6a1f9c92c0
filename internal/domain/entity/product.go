package entity

import "github.com/shopspring/decimal"

// Estados de producto.
const (
	ProductStatusActive     = "active"
	ProductStatusDraft      = "draft"
	ProductStatusOutOfStock = "out_of_stock"
	ProductStatusArchived   = "archived"
)

// Product producto o servicio publicado en una tienda (cilindros de gas, combustible, accesorios).
type Product struct {
	Tenancy
	StoreID       string          `json:"store_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Category      string          `json:"category"` // lpg, fuel, water, accessories, services
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"` // cylinder, liter, kg, unit
	StockQuantity int             `json:"stock_quantity"`
	Status        string          `json:"status"`
	ImageURL      *string         `json:"image_url"`
}
