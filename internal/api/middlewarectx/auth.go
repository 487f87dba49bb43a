// Package middlewarectx содержит HTTP middleware для аутентификации
// и авторизации запросов.
//
// Authenticate проверяет JWT из заголовка Authorization и кладет
// учётную запись в контекст запроса; остальные middleware пакета читают
// её оттуда и поэтому должны стоять в цепочке после Authenticate.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AccountKey — ключ для учётной записи в контексте.
const AccountKey Key = "account"

// AuthService описывает проверку токена доступа.
type AuthService interface {
	VerifyToken(ctx context.Context, token string) (*models.Account, error)
}

// AccountFromContext возвращает учётную запись, положенную Authenticate.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(AccountKey).(*models.Account)
	return account, ok
}

// Authenticate возвращает middleware, проверяющий JWT в заголовке Authorization.
//
// Если токен валиден и учётная запись активна, она добавляется в контекст
// запроса, иначе возвращается 401 Unauthorized.
func Authenticate(authService AuthService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			account, err := authService.VerifyToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
