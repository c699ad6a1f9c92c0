package session

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

// MinPasswordLength longitud mínima de la contraseña demo.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput formulario de registro demo.
type RegisterInput struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	CompanyName     string `json:"company_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate reglas del formulario; se evalúan antes de cualquier llamada remota.
func (in RegisterInput) Validate() error {
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return domain.NewValidationError("email", "formato de email inválido")
	}
	if len(in.Password) < MinPasswordLength {
		return domain.NewValidationError("password", fmt.Sprintf("la contraseña debe tener al menos %d caracteres", MinPasswordLength))
	}
	if in.Password != in.ConfirmPassword {
		return domain.NewValidationError("confirm_password", "las contraseñas no coinciden")
	}
	return nil
}

func accountKey(email string) string {
	return KeyDemoAccount + ":" + strings.ToLower(strings.TrimSpace(email))
}

// RegisterDemo crea una cuenta demo con contraseña, la activa en la sesión y notifica el alta
// al backend (best-effort: un fallo de track_demo_signup solo se registra).
func (r *Resolver) RegisterDemo(ctx context.Context, sessionID string, in RegisterInput) (*entity.Identity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id", "sesión requerida")
	}
	key := accountKey(in.Email)
	if _, found, err := r.store.Get(ctx, key); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	} else if found {
		return nil, fmt.Errorf("cuenta demo %s: %w", in.Email, domain.ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	identity := r.synthesize(&Seed{FullName: in.FullName, Email: in.Email, CompanyName: in.CompanyName})
	identity.PasswordHash = string(hash)

	b, err := json.Marshal(identity)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, key, b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := r.activate(ctx, sessionID, identity); err != nil {
		return nil, err
	}
	r.trackSignup(ctx, identity)
	return identity, nil
}

// SignInDemo reactiva una cuenta demo registrada tras verificar la contraseña.
func (r *Resolver) SignInDemo(ctx context.Context, sessionID, email, password string) (*entity.Identity, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id", "sesión requerida")
	}
	v, found, err := r.store.Get(ctx, accountKey(email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}
	var identity entity.Identity
	if err := json.Unmarshal(v, &identity); err != nil {
		return nil, fmt.Errorf("cuenta demo ilegible: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	identity.Session = r.issueToken(&identity, r.now())
	if err := r.activate(ctx, sessionID, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// SignOut borra bandera e identidad simulada de la sesión. Las cuentas registradas se conservan.
func (r *Resolver) SignOut(ctx context.Context, sessionID string) error {
	_, err := r.SetDemoMode(ctx, sessionID, false, nil)
	return err
}

func (r *Resolver) activate(ctx context.Context, sessionID string, identity *entity.Identity) error {
	if err := r.saveIdentity(ctx, sessionID, identity); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := r.store.Set(ctx, scoped(KeyDemoMode, sessionID), []byte("true")); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *Resolver) trackSignup(ctx context.Context, identity *entity.Identity) {
	if r.backend == nil {
		return
	}
	args := map[string]any{
		"p_email":        identity.Email,
		"p_full_name":    identity.Metadata.FullName,
		"p_company_name": identity.Metadata.CompanyName,
	}
	if err := r.backend.Call(ctx, repository.ProcTrackDemoSignup, args, nil); err != nil {
		r.log.Warn().Err(err).Str("email", identity.Email).Msg("track_demo_signup falló")
	}
}
