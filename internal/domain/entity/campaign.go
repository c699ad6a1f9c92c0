package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de campaña de marketing.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Campaign campaña de marketing (descuentos, promociones).
type Campaign struct {
	Tenancy
	Name            string           `json:"name"`
	Type            string           `json:"type"` // discount, promotion, loyalty, announcement
	Status          string           `json:"status"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	Budget          decimal.Decimal  `json:"budget"`
	TargetAudience  *string          `json:"target_audience"`
	StartsAt        time.Time        `json:"starts_at"`
	EndsAt          *time.Time       `json:"ends_at"`
	Impressions     int              `json:"impressions"`
	Clicks          int              `json:"clicks"`
	Conversions     int              `json:"conversions"`
}

// Estados de certificación.
const (
	CertificationStatusValid    = "valid"
	CertificationStatusPending  = "pending"
	CertificationStatusExpired  = "expired"
	CertificationStatusRejected = "rejected"
)

// Certification licencia o certificado regulatorio del proveedor (defensa civil, SASO, etc.).
type Certification struct {
	Tenancy
	Name              string     `json:"name"`
	Type              string     `json:"type"` // safety, quality, environmental, license
	Status            string     `json:"status"`
	Issuer            string     `json:"issuer"`
	CertificateNumber *string    `json:"certificate_number"`
	IssuedAt          time.Time  `json:"issued_at"`
	ExpiresAt         *time.Time `json:"expires_at"`
	DocumentURL       *string    `json:"document_url"`
}
