package middleware

import (
	"context"
	"net/http"
	"strings"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/common/security"
	"driveloop_admin/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	OperatorIDCtxKey   contextKey = "operatorID"
	OperatorRoleCtxKey contextKey = "operatorRole"
)

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		operatorID, err := security.GetOperatorIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		role, err := security.GetRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), OperatorIDCtxKey, operatorID)
		ctx = context.WithValue(ctx, OperatorRoleCtxKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(OperatorRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get operator ID from context
func GetOperatorIDFromContext(ctx context.Context) (string, bool) {
	operatorID, ok := ctx.Value(OperatorIDCtxKey).(string)
	return operatorID, ok
}

// Helper to get operator role from context
func GetOperatorRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(OperatorRoleCtxKey).(string)
	return role, ok
}
