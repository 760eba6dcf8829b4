package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the JWT claims expected from the token.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HMAC-signed bearer tokens issued by the identity provider.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses the token and returns the principal it names.
func (v *Verifier) Verify(tokenString string) (*domain.Principal, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: token is empty", domain.ErrUnauthenticated)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: token is invalid: %v", domain.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token is not valid", domain.ErrUnauthenticated)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: user_id claim is missing", domain.ErrUnauthenticated)
	}

	return &domain.Principal{
		UserID:      claims.UserID,
		DisplayName: claims.Name,
		Role:        claims.Role,
	}, nil
}

// VerifyHeader accepts an Authorization header value of the form "Bearer <token>".
func (v *Verifier) VerifyHeader(header string) (*domain.Principal, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fmt.Errorf("%w: authorization header must be 'Bearer <token>'", domain.ErrUnauthenticated)
	}
	return v.Verify(parts[1])
}

// Issue signs a token for p. Used by tests and local tooling; production
// tokens come from the identity provider.
func (v *Verifier) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: p.UserID,
		Name:   p.DisplayName,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   p.UserID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
