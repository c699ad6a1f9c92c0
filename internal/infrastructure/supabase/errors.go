package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/gasable-portal/internal/domain"
)

// Códigos de error de Postgres que PostgREST propaga en el cuerpo.
const (
	codeUniqueViolation = "23505"
	codeNoRows          = "PGRST116"
)

// Error error devuelto por PostgREST (cuerpo JSON + status HTTP).
type Error struct {
	Code       string
	Message    string
	Details    string
	Hint       string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap traduce el error remoto a los errores de dominio para errors.Is.
func (e *Error) Unwrap() error {
	switch {
	case e.Code == codeUniqueViolation:
		return domain.ErrDuplicate
	case e.Code == codeNoRows, e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	default:
		return nil
	}
}

func parseError(body []byte, statusCode int) error {
	var resp struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Details          string `json:"details"`
		Hint             string `json:"hint"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return &Error{Code: "unknown", Message: string(body), StatusCode: statusCode}
	}

	msg := resp.Message
	if msg == "" {
		msg = resp.Error
	}
	if msg == "" {
		msg = resp.ErrorDescription
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &Error{
		Code:       resp.Code,
		Message:    msg,
		Details:    resp.Details,
		Hint:       resp.Hint,
		StatusCode: statusCode,
	}
}
