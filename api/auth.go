/*
auth.go - JWT session handling for the reference backend

PURPOSE:
  Issues and verifies bearer tokens. Every /api route except /api/login
  requires a valid token; expired or missing tokens get a 401 envelope so
  the client can redirect to login instead of rendering stale data.

TOKEN SHAPE:
  HS256-signed JWT with standard registered claims (sub, iat, exp).
  No custom claims: the reference backend has a flat user model.

SEE ALSO:
  - server.go: Where the middleware is mounted
  - listview/gateway.go: Client-side 401 handling
*/
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 8 * time.Hour

// Auth issues and validates session tokens.
type Auth struct {
	secret []byte
	ttl    time.Duration

	// username -> password. Reference backend only; production would
	// delegate to the identity provider.
	users map[string]string
}

// NewAuth creates an Auth with the given signing secret and user table.
func NewAuth(secret string, users map[string]string) *Auth {
	return &Auth{secret: []byte(secret), ttl: DefaultTokenTTL, users: users}
}

// IssueToken signs a token for the given username.
func (a *Auth) IssueToken(username string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses a bearer token and returns the subject.
func (a *Auth) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	return claims.Subject, nil
}

// Login handles POST /api/login.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if pw, ok := a.users[req.Username]; !ok || pw != req.Password {
		writeFailure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expires, err := a.IssueToken(req.Username)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}

// Require is middleware rejecting requests without a valid bearer token.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			writeFailure(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := a.Verify(tokenStr); err != nil {
			writeFailure(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
