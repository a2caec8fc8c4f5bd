package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by TokenVerifier implementations for tokens
// that are missing, malformed, expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier authenticates a bearer token and yields the user it belongs to.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

// JWTVerifier verifies HMAC-signed JWTs whose subject claim carries the
// user ID.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify implements TokenVerifier.
func (v *JWTVerifier) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// Issue signs a token for the given user, valid for the given duration.
func (v *JWTVerifier) Issue(userID uuid.UUID, validFor time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validFor)),
	})

	return token.SignedString(v.secret)
}

type userIDContextKey struct{}

// ContextWithUserID attaches the authenticated user to the request context.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext retrieves the authenticated user from the request context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(uuid.UUID)

	return userID, ok
}

const bearerPrefix = "Bearer "

// requireAuth wraps a handler with bearer token authentication.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")

			return
		}

		userID, err := s.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")

			return
		}

		next(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	}
}
