package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio/models"
	"studio/repository/memory"
)

func newAuthService(t *testing.T, ttl time.Duration) (*AuthService, *memory.UserRepository, *memory.RoleRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	ctx := context.Background()
	require.NoError(t, roles.Save(ctx, &models.Role{Name: models.RoleUser}))
	require.NoError(t, roles.Save(ctx, &models.Role{Name: models.RoleAdmin}))
	return NewAuthService(users, roles, "test-secret", ttl), users, roles
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "Ann", resp.User.DisplayName)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	// Second registration fails regardless of password or name.
	_, err = svc.Register(ctx, "a@x.com", "other-password", "Someone Else")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_NeverStoresPlaintext(t *testing.T) {
	svc, users, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "secret1")
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestAuthService_Register_UnseededRegistry(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	svc := NewAuthService(users, roles, "test-secret", time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "user", resp.User.Role)

	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Roles)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestAuthService_Login_SameErrorForBothFailures(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestAuthService_VerifyRoundTrip(t *testing.T) {
	svc, users, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	userID, err := svc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), userID)
}

func TestAuthService_Verify_Garbage(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Verify_Expired(t *testing.T) {
	svc, _, _ := newAuthService(t, -time.Minute)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	_, err = svc.Verify(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Verify_WrongSecret(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	other := NewAuthService(memory.NewUserRepository(), memory.NewRoleRepository(), "another-secret", time.Hour)
	_, err = other.Verify(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserView_AdminLabel(t *testing.T) {
	user := &models.User{Email: "mod@x.com", Roles: []string{"USER", "admin"}}
	view := UserView(user)
	assert.Equal(t, "admin", view.Role)

	user.Roles = []string{"USER"}
	assert.Equal(t, "user", UserView(user).Role)

	user.Roles = nil
	assert.Equal(t, "user", UserView(user).Role)
}
