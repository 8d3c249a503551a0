package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "userId"
	CtxUserRole ctxKey = "role"
)

// JWTAuth valida el Bearer token (HS256 únicamente) y deja userId y role
// en el contexto del request. Cualquier token malformado, vencido o con
// claims raros corta acá con 401.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	keyFn := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == "" || raw == header {
				http.Error(w, "falta el header Authorization (Bearer)", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, keyFn)
			if err != nil || !token.Valid {
				http.Error(w, "token inválido o vencido", http.StatusUnauthorized)
				return
			}

			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				http.Error(w, "token sin sub válido", http.StatusUnauthorized)
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), CtxUserID, int(sub))
			ctx = context.WithValue(ctx, CtxUserRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly exige role == "admin"; se monta siempre después de JWTAuth.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role, _ := r.Context().Value(CtxUserRole).(string); role != "admin" {
				http.Error(w, "requiere rol admin", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext devuelve el userId autenticado, o 0 si no hay.
func UserIDFromContext(ctx context.Context) int {
	id, _ := ctx.Value(CtxUserID).(int)
	return id
}
