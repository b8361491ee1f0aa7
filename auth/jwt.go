package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

const defaultName = "Player"

// Identity is who a verified token belongs to.
type Identity struct {
	UserID string
	Name   string
}

// Verifier validates Neon Auth JWTs against the provider's JWKS.
type Verifier struct {
	issuer  string
	methods []string
	keys    jwt.Keyfunc
}

// NewVerifier builds a verifier for baseURL (e.g. from NEON_AUTH_BASE_URL). The JWKS
// is fetched once and refreshed in the background by keyfunc.
func NewVerifier(baseURL string) (*Verifier, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("NEON_AUTH_BASE_URL is not set")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	jwks, err := keyfunc.NewDefault([]string{strings.TrimRight(baseURL, "/") + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("loading jwks: %w", err)
	}
	return &Verifier{
		issuer:  u.Scheme + "://" + u.Host,
		methods: []string{"EdDSA"},
		keys:    jwks.Keyfunc,
	}, nil
}

// Verify parses tokenString and returns its claims.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keys,
		jwt.WithIssuer(v.issuer),
		jwt.WithValidMethods(v.methods))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Identify verifies tokenString and extracts the user id and display name.
func (v *Verifier) Identify(tokenString string) (Identity, error) {
	claims, err := v.Verify(tokenString)
	if err != nil {
		return Identity{}, err
	}
	id := UserIDFromClaims(claims)
	if id == "" {
		return Identity{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return Identity{UserID: id, Name: FirstNameFromClaims(claims)}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// FirstNameFromClaims returns the first word of the "name" claim, or a fallback.
func FirstNameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return defaultName
	}
	return parts[0]
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
