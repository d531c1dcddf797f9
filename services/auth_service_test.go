package services

import (
	"testing"

	"foot-match-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(setupTestDB(t), newTestTokenService())
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Register("ann@example.com", "s3cret-pass", "Ann", models.RoleOrganizer)
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	assert.Equal(t, "ann@example.com", result.User.Email)
	assert.Equal(t, models.RoleOrganizer, result.User.Role)

	// The issued token resolves back to the registered user.
	assert.True(t, svc.Tokens.Validate(result.AccessToken))
	userID, err := svc.Tokens.UserID(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register("dup@example.com", "s3cret-pass", "First", models.RolePlayer)
	require.NoError(t, err)

	_, err = svc.Register("dup@example.com", "other-pass", "Second", models.RolePlayer)
	assert.ErrorIs(t, err, models.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)
	_, err := svc.Register("bob@example.com", "s3cret-pass", "Bob", models.RolePlayer)
	require.NoError(t, err)

	result, err := svc.Login("bob@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", result.User.Email)

	// Unknown email and wrong password are indistinguishable.
	_, wrongPass := svc.Login("bob@example.com", "wrong-pass")
	_, noUser := svc.Login("nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, wrongPass, models.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestRefresh(t *testing.T) {
	svc := newTestAuthService(t)
	registered, err := svc.Register("kim@example.com", "s3cret-pass", "Kim", models.RolePlayer)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	_, err = svc.Refresh("garbage")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRefreshForDeletedUser(t *testing.T) {
	svc := newTestAuthService(t)
	registered, err := svc.Register("gone@example.com", "s3cret-pass", "Gone", models.RolePlayer)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(&models.User{}, "id = ?", registered.User.ID).Error)

	_, err = svc.Refresh(registered.RefreshToken)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
