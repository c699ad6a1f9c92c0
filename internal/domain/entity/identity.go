package entity

import (
	"strings"
	"time"
)

// DemoEmailMarker marca de email que identifica cuentas de demostración.
const DemoEmailMarker = "@demo.gasable"

// IdentityMetadata metadatos embebidos en la identidad (user_metadata en Supabase).
type IdentityMetadata struct {
	FullName    string `json:"full_name"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Demo        bool   `json:"demo,omitempty"`
}

// SessionToken sesión tipo bearer (real o simulada).
type SessionToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Identity identidad activa de la sesión: real (token externo) o simulada (modo demo).
type Identity struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	Metadata     IdentityMetadata `json:"user_metadata"`
	Session      *SessionToken    `json:"session"`
	PasswordHash string           `json:"password_hash,omitempty"` // solo identidades demo registradas
	CreatedAt    time.Time        `json:"created_at"`
}

// IsDemo informa si la identidad es simulada o lleva la marca demo en el email.
func (i *Identity) IsDemo() bool {
	if i == nil {
		return false
	}
	return i.Metadata.Demo || strings.Contains(strings.ToLower(i.Email), DemoEmailMarker)
}
