package middleware

import (
	"context"
	"net/http"

	"github.com/salonhub/booking-engine/internal/api/handlers"
)

// customerIDHeader заголовок с идентификатором клиента в чате.
// Проставляется диалоговым пайплайном, который уже аутентифицировал клиента.
const customerIDHeader = "X-Customer-ID"

type customerIDKey struct{}

// Auth middleware проверяет наличие идентификатора клиента
// и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := r.Header.Get(customerIDHeader)
		if customerID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Customer-ID")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey{}, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CustomerID возвращает идентификатор клиента из контекста запроса
func CustomerID(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey{}).(string)
	return id
}
