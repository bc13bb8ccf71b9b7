package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"jewel-studio-api/common"
	"jewel-studio-api/service"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// AuthMiddleware guards admin routes: it extracts the bearer token and
// verifies it as an access token. The user's continued existence is not
// re-checked; the token is trusted for its own lifetime.
func AuthMiddleware(authService *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			appErr := common.NewAppError(http.StatusUnauthorized, "Token is required", nil)
			appErr.Send(w)
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			appErr := common.NewAppError(http.StatusUnauthorized, "Token is required", nil)
			appErr.Send(w)
			return
		}

		claims, err := authService.VerifyAccessToken(headerParts[1])
		if err != nil {
			appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired access token", err)
			appErr.Send(w)
			return
		}

		userID, _ := strconv.Atoi(claims.Subject)
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
