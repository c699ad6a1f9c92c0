package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/flagstore"
)

func validInput() session.RegisterInput {
	return session.RegisterInput{
		Email: "owner@acme.sa", FullName: "Owner", CompanyName: "Acme Gas",
		Password: "secret1", ConfirmPassword: "secret1",
	}
}

func TestRegisterInput_Validaciones(t *testing.T) {
	cases := map[string]func(*session.RegisterInput){
		"email":            func(in *session.RegisterInput) { in.Email = "no-es-email" },
		"password":         func(in *session.RegisterInput) { in.Password, in.ConfirmPassword = "12345", "12345" },
		"confirm_password": func(in *session.RegisterInput) { in.ConfirmPassword = "otra-cosa" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			err := in.Validate()
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}
	assert.NoError(t, validInput().Validate())
}

func TestRegisterDemo_ValidacionAntesDeLlamadasRemotas(t *testing.T) {
	rec := &callRecorder{}
	r := newResolver(flagstore.NewMemoryStore(), rec)
	in := validInput()
	in.ConfirmPassword = "x"

	_, err := r.RegisterDemo(context.Background(), "s1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, rec.calls)
}

func TestRegisterDemo_ActivaYNotifica(t *testing.T) {
	ctx := context.Background()
	rec := &callRecorder{}
	r := newResolver(flagstore.NewMemoryStore(), rec)

	id, err := r.RegisterDemo(ctx, "s1", validInput())
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.sa", id.Email)
	assert.Equal(t, "Acme Gas", id.Metadata.CompanyName)
	assert.NotEmpty(t, id.PasswordHash)
	assert.True(t, r.IsDemoMode(ctx, "s1", nil))
	assert.Equal(t, []string{repository.ProcTrackDemoSignup}, rec.calls)
	assert.Equal(t, "owner@acme.sa", rec.args[0]["p_email"])
}

func TestRegisterDemo_FalloDeTrackingNoBloquea(t *testing.T) {
	rec := &callRecorder{err: errors.New("rpc down")}
	r := newResolver(flagstore.NewMemoryStore(), rec)
	_, err := r.RegisterDemo(context.Background(), "s1", validInput())
	assert.NoError(t, err)
}

func TestRegisterDemo_Duplicado(t *testing.T) {
	ctx := context.Background()
	r := newResolver(flagstore.NewMemoryStore(), nil)
	_, err := r.RegisterDemo(ctx, "s1", validInput())
	require.NoError(t, err)
	_, err = r.RegisterDemo(ctx, "s2", validInput())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignInDemo_TrasSignOut(t *testing.T) {
	ctx := context.Background()
	r := newResolver(flagstore.NewMemoryStore(), nil)
	registered, err := r.RegisterDemo(ctx, "s1", validInput())
	require.NoError(t, err)

	require.NoError(t, r.SignOut(ctx, "s1"))
	assert.False(t, r.IsDemoMode(ctx, "s1", nil))

	_, err = r.SignInDemo(ctx, "s1", "owner@acme.sa", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	id, err := r.SignInDemo(ctx, "s1", "OWNER@acme.sa", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id.ID)
	assert.Equal(t, registered.Metadata.CompanyID, id.Metadata.CompanyID)
	assert.True(t, r.IsDemoMode(ctx, "s1", nil))
}

func TestSignInDemo_CuentaInexistente(t *testing.T) {
	r := newResolver(flagstore.NewMemoryStore(), nil)
	_, err := r.SignInDemo(context.Background(), "s1", "nadie@acme.sa", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
