package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity fields the API reads from an access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier accepts HS256 tokens signed with a shared secret and RS256 tokens
// whose key is published at a JWKS endpoint. Either source may be absent.
type Verifier struct {
	secret []byte
	keys   *KeySet
}

func NewVerifier(secret string, keys *KeySet) *Verifier {
	v := &Verifier{keys: keys}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

// Verify checks the signature and expiry and returns the claims. The subject
// must be present since it becomes the caller's identity.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{"HS256", "RS256"}),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.keys == nil {
			return nil, fmt.Errorf("RS256 token received but AUTH_JWKS_URL is not configured")
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("RS256 token has no kid header")
		}
		return v.keys.lookup(kid)
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}

// SignHS256 issues a token for the given subject. Used by tests and local tooling.
func SignHS256(secret, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
