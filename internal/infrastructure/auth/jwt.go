package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edulearn/internal/shared/biztime"
)

// Claims is the identity issued by the platform's auth service. Roles are kept
// as raw strings; unknown values are dropped when the middleware builds a RoleSet.
type Claims struct {
	UserID   string   `json:"user_id"`
	Roles    []string `json:"roles"`
	SchoolID string   `json:"school_id,omitempty"`
	Email    string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Identity struct {
	UserID   string
	Roles    []string
	SchoolID string
	Email    string
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
}

func NewJWTService(secret, issuer string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		issuer:           issuer,
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate signs an access token. Production tokens come from the auth
// service; this is used by the dev token command and tests.
func (s *JWTService) Generate(identity Identity) (string, error) {
	now := biztime.NowUTC()

	claims := &Claims{
		UserID:   identity.UserID,
		Roles:    identity.Roles,
		SchoolID: identity.SchoolID,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user_id claim")
	}
	return claims, nil
}
