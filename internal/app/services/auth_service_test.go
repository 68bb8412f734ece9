package services

import (
	"context"
	"strings"
	"testing"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.services.Auth

	user, err := svc.Signup(ctx, &dto.SignupRequest{Name: " Jane ", Email: "jane@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)

	stored, err := f.store.FindUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", stored.PasswordHash)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := f.jwt.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.Auth.Signup(ctx, &dto.SignupRequest{Name: "Dup", Email: f.owner.Email, Password: "pw"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignupRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.Auth.Signup(context.Background(), &dto.SignupRequest{Name: "  ", Email: "x@example.com", Password: "pw"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, ok := apperrors.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, "name", ce.Field)
}

func TestSignupPasswordLengthBound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 24 three-byte runes: 72 bytes
	atLimit := strings.Repeat("密", validation.PasswordMaxBytes/3)
	_, err := f.services.Auth.Signup(ctx, &dto.SignupRequest{Name: "Max", Email: "max@example.com", Password: atLimit})
	require.NoError(t, err)

	_, err = f.services.Auth.Signup(ctx, &dto.SignupRequest{Name: "Long", Email: "long@example.com", Password: atLimit + "x"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, ok := apperrors.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, "password", ce.Field)

	_, err = f.store.FindUserByEmail(ctx, "long@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.Auth.Signup(ctx, &dto.SignupRequest{Name: "Jane", Email: "jane@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = f.services.Auth.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.services.Auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "right"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
