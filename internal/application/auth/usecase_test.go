package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Facturas-api/internal/application/auth"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byEmail map[string]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(&fakeUsers{byEmail: map[string]*entity.User{}},
		auth.JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "test"})
}

func TestRegistroYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "ana@example.com", u.Name)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	require.NoError(t, err)

	userID, email, err := jwt.Parse("secreto", out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestRegistro_Errores(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x", Password: "clave-segura"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "clave-segura"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.co", Password: "clave-segura"})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "clave-segura"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
