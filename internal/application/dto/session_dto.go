package dto

import (
	"time"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// IdentityResponse identidad expuesta al cliente (nunca incluye el hash de contraseña).
type IdentityResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CompanyID   string    `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Demo        bool      `json:"demo"`
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// NewIdentityResponse convierte la identidad; nil devuelve nil.
func NewIdentityResponse(id *entity.Identity) *IdentityResponse {
	if id == nil {
		return nil
	}
	out := &IdentityResponse{
		ID:          id.ID,
		Email:       id.Email,
		FullName:    id.Metadata.FullName,
		CompanyID:   id.Metadata.CompanyID,
		CompanyName: id.Metadata.CompanyName,
		Demo:        id.IsDemo(),
	}
	if id.Session != nil {
		out.AccessToken = id.Session.AccessToken
		out.ExpiresAt = id.Session.ExpiresAt
	}
	return out
}

// SessionResponse estado de la sesión actual.
type SessionResponse struct {
	SessionID string            `json:"session_id"`
	Demo      bool              `json:"demo"`
	Identity  *IdentityResponse `json:"identity"`
}

// EnableDemoRequest datos opcionales de la identidad demo.
type EnableDemoRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

// RegisterDemoRequest alta de cuenta demo.
type RegisterDemoRequest struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	CompanyName     string `json:"company_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignInRequest ingreso a una cuenta demo existente.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
