package middleware

import (
	"context"
	"net/http"
	"strings"

	"prize_wheel/pkg/logger"
	"prize_wheel/pkg/resp"
	"prize_wheel/pkg/token"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Auth rejects requests without a valid Bearer access token and stores the
// admin id in the request context.
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := token.VerifyAccessToken(raw, secretKey)
			if err != nil {
				logger.L().Debug("access token rejected", zap.Error(err))
				resp.WriteError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			adminID, err := claims.AdminID()
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok
}
