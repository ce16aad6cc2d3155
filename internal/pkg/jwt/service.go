package jwt

import (
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Tokens are issued by the external auth service; this package only verifies
// them for the admin surface.

const RoleAdmin = "admin"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Role string `json:"role"`

	jwtlib.RegisteredClaims
}

type Verifier interface {
	ValidateToken(tokenString string) (Claims, error)
}

type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (s *HMACVerifier) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

var _ Verifier = (*HMACVerifier)(nil)
