package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

// Claim names carried by every issued token.
const (
	ClaimUserID = "user_id"
	ClaimRoleID = "role_id"
	ClaimNonce  = "nonce"
)

// Token is the issued bearer credential.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService issues and resolves stateless HS256 bearer tokens. Validity
// is solely the expiry claim; the nonce exists for traceability only.
type AuthService struct {
	users  *UserService
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewAuthService(users *UserService, secret []byte, issuer string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *AuthService) HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(hashed), err
}

func (s *AuthService) VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// IssueToken looks up the user and signs a token binding the user id, role
// id, expiry and a fresh nonce.
func (s *AuthService) IssueToken(ctx context.Context, userID int64) (Token, error) {
	user, err := s.users.Get(ctx, store.Where("id", userID))
	if err != nil {
		return Token{}, err
	}
	expire := time.Now().UTC().Add(s.ttl)
	claims := jwt.MapClaims{
		"iss":       s.issuer,
		ClaimUserID: user.ID,
		ClaimRoleID: user.Role.ID,
		"exp":       expire.Unix(),
		ClaimNonce:  uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// ResolveUser verifies the token and loads the full user with role. Any
// verification failure (malformed, expired, bad signature, missing
// subject) is a BadCredentialsError.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (models.User, error) {
	userID, _, _, err := s.parse(token)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Get(ctx, store.Where("id", userID))
}

// ResolveClaims verifies the token and returns the raw claim tuple after
// confirming the user still exists.
func (s *AuthService) ResolveClaims(ctx context.Context, token string) (userID, roleID int64, nonce string, err error) {
	userID, roleID, nonce, err = s.parse(token)
	if err != nil {
		return 0, 0, "", err
	}
	if _, err := s.users.Exists(ctx, store.Where("id", userID), true); err != nil {
		return 0, 0, "", err
	}
	return userID, roleID, nonce, nil
}

// CurrentUser wraps ResolveUser for the request boundary: a token whose
// subject no longer exists is unauthorized, not merely missing.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (models.User, error) {
	user, err := s.ResolveUser(ctx, token)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return models.User{}, apperrors.Unauthorized("you are not authorized")
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) parse(token string) (userID, roleID int64, nonce string, err error) {
	badCredentials := apperrors.BadCredentials("could not validate credentials")
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, 0, "", badCredentials
	}
	rawUserID, ok := claims[ClaimUserID].(float64)
	if !ok {
		return 0, 0, "", badCredentials
	}
	rawRoleID, _ := claims[ClaimRoleID].(float64)
	rawNonce, _ := claims[ClaimNonce].(string)
	return int64(rawUserID), int64(rawRoleID), rawNonce, nil
}
