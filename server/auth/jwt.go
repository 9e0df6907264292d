package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultAccessTokenTTL mirrors the reference configuration. Two seconds is
// obviously a placeholder; override with ACCESS_TOKEN_TTL.
const DefaultAccessTokenTTL = 2 * time.Second

var ErrInvalidToken = errors.New("token is not valid!")

// Claims carries the identity baked into every access and refresh token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
	UserId   string `json:"_id"`
}

// TokenService signs and verifies access/refresh token pairs. Access tokens
// are short-lived and stateless; refresh tokens carry no expiry claim and are
// revoked by overwriting the copy stored on the user record.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
}

func NewTokenService(accessSecret, refreshSecret []byte, accessTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
	}
}

// NewTokenServiceFromEnv reads JWT_SECRET, JWT_REFRESH_SECRET and the
// optional ACCESS_TOKEN_TTL duration. Both secrets are required.
func NewTokenServiceFromEnv() (*TokenService, error) {
	accessSecret := os.Getenv("JWT_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	ttl := DefaultAccessTokenTTL
	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid ACCESS_TOKEN_TTL")
		}
		ttl = parsed
	}
	return NewTokenService([]byte(accessSecret), []byte(refreshSecret), ttl), nil
}

func (s *TokenService) IssueAccessToken(username, role, userId string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
		Username: username,
		Role:     role,
		UserId:   userId,
	})
	return token.SignedString(s.accessSecret)
}

func (s *TokenService) IssueRefreshToken(username, role, userId string) (string, error) {
	// The jti makes every issued refresh token distinct, so rotation always
	// overwrites the stored value with a token that cannot collide with the
	// one it replaces. No expiry claim: revocation is by overwrite.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			ID:       uuid.New().String(),
		},
		Username: username,
		Role:     role,
		UserId:   userId,
	})
	return token.SignedString(s.refreshSecret)
}

func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	return verify(tokenString, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	return verify(tokenString, s.refreshSecret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
