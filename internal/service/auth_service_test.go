package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/pkg/apperror"
)

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	signup, err := svc.Signup(context.Background(), dto.SignupInput{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, signup.AccessToken)
	assert.Equal(t, "Bearer", signup.TokenType)
	assert.Empty(t, signup.User.PasswordHash)

	login, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, login.User.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), dto.SignupInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupInput{Email: "jane@example.com", Password: "other456"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), dto.SignupInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestTokenSubjectIsUserID(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	res, err := svc.Signup(context.Background(), dto.SignupInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(res.AccessToken, claims)
	require.NoError(t, err)

	assert.Equal(t, res.User.ID.String(), claims.Subject)
}
