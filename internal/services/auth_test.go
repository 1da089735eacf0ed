package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/models"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T, ttl time.Duration) (*fixture, *AuthService, models.User) {
	t.Helper()
	f := newFixture()
	_, teacher, _ := seedRoles(t, f)
	auth := NewAuthService(f.Users, []byte(testSecret), "education-backend", ttl)

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	user, err := f.Users.Create(context.Background(), models.User{
		FirstName:    "Ana",
		LastName:     "Popescu",
		PasswordHash: hash,
		RoleID:       teacher.ID,
	})
	require.NoError(t, err)
	return f, auth, user
}

func TestPasswordHashRoundTrip(t *testing.T) {
	_, auth, user := newAuthFixture(t, time.Hour)
	assert.True(t, auth.VerifyPassword("s3cret", user.PasswordHash))
	assert.False(t, auth.VerifyPassword("wrong", user.PasswordHash))
}

func TestIssueTokenAndResolve(t *testing.T) {
	_, auth, user := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	token, err := auth.IssueToken(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	resolved, err := auth.ResolveUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	require.NotNil(t, resolved.Role)
	assert.Equal(t, user.RoleID, resolved.Role.ID)
}

func TestResolveClaims(t *testing.T) {
	_, auth, user := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	token, err := auth.IssueToken(ctx, user.ID)
	require.NoError(t, err)

	userID, roleID, nonce, err := auth.ResolveClaims(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, user.RoleID, roleID)
	assert.NotEmpty(t, nonce)
}

func TestExpiredTokenRejected(t *testing.T) {
	_, auth, user := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	token, err := auth.IssueToken(ctx, user.ID)
	require.NoError(t, err)

	_, err = auth.ResolveUser(ctx, token.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadCredentials))
}

func TestTamperedTokenRejected(t *testing.T) {
	_, auth, user := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	token, err := auth.IssueToken(ctx, user.ID)
	require.NoError(t, err)

	_, err = auth.ResolveUser(ctx, token.AccessToken+"x")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadCredentials))
}

func TestTokenWithoutExpiryRejected(t *testing.T) {
	_, auth, user := newAuthFixture(t, time.Hour)

	claims := jwt.MapClaims{
		ClaimUserID: user.ID,
		ClaimRoleID: user.RoleID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ResolveUser(context.Background(), signed)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadCredentials))
}

func TestCurrentUserDeletedSubject(t *testing.T) {
	f, auth, user := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	token, err := auth.IssueToken(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, f.Users.Delete(ctx, user.ID))

	_, err = auth.CurrentUser(ctx, token.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}
