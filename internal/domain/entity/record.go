package entity

import "time"

// Tenancy columnas comunes a toda fila multi-tenant (id, company_id y timestamps).
// Se embebe en cada entidad para que la capa de datos pueda sellar el tenant sin reflexión.
type Tenancy struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Base devuelve las columnas comunes (promovido a *Store, *Order, etc.).
func (t *Tenancy) Base() *Tenancy { return t }

// Record contrato mínimo de una fila tenant-scoped.
type Record interface {
	Base() *Tenancy
}
