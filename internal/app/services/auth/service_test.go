package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "villadesk/internal/domain/auth"
	domainuser "villadesk/internal/domain/user"
	"villadesk/internal/infra/security"
	"villadesk/internal/infra/storage/memory"
)

func newService() (*Service, *memory.UserRepository, *memory.SessionStore) {
	users := memory.NewUserRepository()
	sessions := memory.NewSessionStore()
	svc := &Service{
		Users:      users,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}
	return svc, users, sessions
}

func TestLoginAndResolve(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "Owner@Example.com", "sw0rdfish", "Owner"))

	res, err := svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "sw0rdfish"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domainuser.RoleAdmin, res.User.Role)

	resolved, err := svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, resolved.User.ID)

	require.NoError(t, svc.Logout(ctx, res.Token))
	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "owner@example.com", "sw0rdfish", ""))

	_, err := svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "sw0rdfish"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginParams{Email: "", Password: "sw0rdfish"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBlockedUserCannotLoginOrKeepSession(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "owner@example.com", "sw0rdfish", ""))

	res, err := svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "sw0rdfish"})
	require.NoError(t, err)

	u, err := users.ByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	u.Blocked = true
	require.NoError(t, users.Save(ctx, u))

	_, err = svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "sw0rdfish"})
	assert.ErrorIs(t, err, ErrUserBlocked)

	// An already-issued token dies on the next resolve.
	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUserBlocked)
	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestResolveExpiredSession(t *testing.T) {
	svc, _, sessions := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "owner@example.com", "sw0rdfish", ""))
	res, err := svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "sw0rdfish"})
	require.NoError(t, err)

	session, err := sessions.Get(ctx, domainauth.Token(res.Token))
	require.NoError(t, err)
	session.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, sessions.Save(ctx, session))

	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestEnsureAdminRekeysExistingAccount(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "owner@example.com", "first-pass", "Owner"))

	u, err := users.ByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	u.Blocked = true
	u.Role = domainuser.RoleStaff
	require.NoError(t, users.Save(ctx, u))

	require.NoError(t, svc.EnsureAdmin(ctx, "owner@example.com", "second-pass", ""))
	_, err = svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "first-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	res, err := svc.Login(ctx, LoginParams{Email: "owner@example.com", Password: "second-pass"})
	require.NoError(t, err)
	assert.Equal(t, domainuser.RoleAdmin, res.User.Role)
}

func TestEnsureAdminValidatesPassword(t *testing.T) {
	svc, _, _ := newService()
	err := svc.EnsureAdmin(context.Background(), "owner@example.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
