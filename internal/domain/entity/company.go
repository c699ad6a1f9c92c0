package entity

import "time"

// Estados de la empresa proveedora.
const (
	CompanyStatusActive    = "active"
	CompanyStatusPending   = "pending"
	CompanyStatusSuspended = "suspended"
)

// Company representa al proveedor (tenant) dueño de tiendas, productos y pedidos.
// Los campos opcionales se serializan como null, nunca se omiten.
type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	LegalName          *string   `json:"legal_name"`
	CRNumber           *string   `json:"cr_number"`  // registro comercial
	VATNumber          *string   `json:"vat_number"` // número de IVA (ZATCA)
	Email              string    `json:"email"`
	Phone              *string   `json:"phone"`
	City               *string   `json:"city"`
	Address            *string   `json:"address"`
	LogoURL            *string   `json:"logo_url"`
	Status             string    `json:"status"`
	SubscriptionTier   *string   `json:"subscription_tier"`
	SubscriptionStatus *string   `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyUpdate campos editables del perfil (nil = sin cambio).
type CompanyUpdate struct {
	Name      *string `json:"name,omitempty"`
	LegalName *string `json:"legal_name,omitempty"`
	CRNumber  *string `json:"cr_number,omitempty"`
	VATNumber *string `json:"vat_number,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	City      *string `json:"city,omitempty"`
	Address   *string `json:"address,omitempty"`
	LogoURL   *string `json:"logo_url,omitempty"`
}

// Apply aplica la actualización sobre una copia de la empresa.
func (u CompanyUpdate) Apply(c Company, now time.Time) Company {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.LegalName != nil {
		c.LegalName = u.LegalName
	}
	if u.CRNumber != nil {
		c.CRNumber = u.CRNumber
	}
	if u.VATNumber != nil {
		c.VATNumber = u.VATNumber
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = u.Phone
	}
	if u.City != nil {
		c.City = u.City
	}
	if u.Address != nil {
		c.Address = u.Address
	}
	if u.LogoURL != nil {
		c.LogoURL = u.LogoURL
	}
	c.UpdatedAt = now
	return c
}
