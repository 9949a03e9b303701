package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, выставляется API gateway
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется заголовок X-User-ID с UUID пользователя"

type userIDKey struct{}

// Auth проверяет заголовок X-User-ID и кладёт ID пользователя в контекст
// Аутентификация выполняется на gateway, здесь значению доверяем
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := WithUserID(r.Context(), id.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext достаёт ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}
