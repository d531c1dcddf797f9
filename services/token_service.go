package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates HS256-signed JWTs. The signing secret
// is injected once at construction; the same secret signs and validates
// both access and refresh tokens. There is no revocation list — a token is
// good for its full TTL.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type authClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (t *TokenService) IssueAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return t.issue(userID, email, role, t.accessTTL)
}

func (t *TokenService) IssueRefreshToken(userID uuid.UUID, email, role string) (string, error) {
	return t.issue(userID, email, role, t.refreshTTL)
}

func (t *TokenService) issue(userID uuid.UUID, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "foot-match-service",
		},
	})
	return tok.SignedString(t.secret)
}

// Validate fails closed: false for empty, malformed, mis-signed or expired
// tokens. It never panics.
func (t *TokenService) Validate(token string) bool {
	if token == "" {
		return false
	}
	_, err := t.parse(token)
	return err == nil
}

// UserID extracts the subject user id. Only meaningful for a token that
// already passed Validate.
func (t *TokenService) UserID(token string) (uuid.UUID, error) {
	claims, err := t.parse(token)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

// Identity resolves the user id and role in a single parse. Callers that
// need both should prefer it over UserID+Role: each of those verifies the
// signature again.
func (t *TokenService) Identity(token string) (uuid.UUID, string, error) {
	claims, err := t.parse(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, claims.Role, nil
}

// Role extracts the role claim. Only meaningful after Validate.
func (t *TokenService) Role(token string) (string, error) {
	claims, err := t.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// AccessTokenTTLSeconds is what clients see as expiresIn.
func (t *TokenService) AccessTokenTTLSeconds() int64 {
	return int64(t.accessTTL.Seconds())
}

func (t *TokenService) parse(token string) (*authClaims, error) {
	tok, err := jwt.ParseWithClaims(token, &authClaims{}, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*authClaims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
