package entity

import "github.com/shopspring/decimal"

// Estados de tienda.
const (
	StoreStatusActive   = "active"
	StoreStatusInactive = "inactive"
	StoreStatusPending  = "pending"
)

// Store tienda (punto de venta online) de un proveedor.
type Store struct {
	Tenancy
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Category    string           `json:"category"` // lpg, fuel, water, accessories
	Status      string           `json:"status"`
	City        string           `json:"city"`
	Address     *string          `json:"address"`
	Phone       *string          `json:"phone"`
	LogoURL     *string          `json:"logo_url"`
	Rating      *decimal.Decimal `json:"rating"`
}

// Estados de sucursal.
const (
	BranchStatusActive   = "active"
	BranchStatusInactive = "inactive"
)

// Branch sucursal física (ubicación de despacho) de una tienda.
type Branch struct {
	Tenancy
	StoreID     string   `json:"store_id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       *string  `json:"phone"`
	ManagerName *string  `json:"manager_name"`
	Status      string   `json:"status"`
}
