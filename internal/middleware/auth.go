package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"legends-bot/internal/domain"
	apperrors "legends-bot/pkg/errors"
	"legends-bot/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

// AdminIDContextKey carries the authenticated admin's Telegram id.
const AdminIDContextKey ContextKey = "admin_id"

// AdminAuth verifies a Bearer HS256 token issued by the admin auth
// endpoint and puts the admin id into the request context.
func AdminAuth(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Authorization header is required"), log)
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Invalid authorization header format"), log)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Token is required"), log)
				return
			}

			adminID, err := ParseAdminToken(tokenString, secret)
			if err != nil {
				log.WithError(err).Warn("Admin token validation failed")
				writeErrorResponse(w, apperrors.NewAuthenticationError("Invalid or expired token"), log)
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDContextKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IssueAdminToken creates a signed token for an organizer id.
func IssueAdminToken(adminID domain.UserID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(adminID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdminToken validates the signature and expiry and returns the
// admin id from the subject claim.
func ParseAdminToken(tokenString, secret string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return domain.UserID(id), nil
}

// AdminIDFromContext extracts the authenticated admin id put there by
// AdminAuth.
func AdminIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(AdminIDContextKey).(domain.UserID)
	return id, ok
}
