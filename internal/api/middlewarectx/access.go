package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
)

// MembershipService описывает проверку действующего членства.
type MembershipService interface {
	HasActiveMembership(ctx context.Context, accountID int64) (bool, error)
}

// RequireRoles возвращает middleware, пропускающий только перечисленные роли.
func RequireRoles(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				log.Error("account missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			if _, ok := allowed[account.Role]; !ok {
				log.Warn("access denied by role",
					slog.Int64("account_id", account.ID),
					slog.String("role", account.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin возвращает middleware, пропускающий владельца
// учётной записи из URL-параметра accountID либо администратора.
func RequireOwnerOrAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				log.Error("account missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			targetID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid account id"))
				return
			}
			if account.ID != targetID && account.Role != models.RoleAdmin {
				log.Warn("access to foreign account denied",
					slog.Int64("account_id", account.ID),
					slog.Int64("target_id", targetID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActiveMembership возвращает middleware, пропускающий только
// владельцев действующего членства. Статус вычисляется на момент запроса,
// истёкший по дате период не даёт доступа независимо от сохранённого статуса.
func RequireActiveMembership(membershipService MembershipService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				log.Error("account missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			hasActive, err := membershipService.HasActiveMembership(r.Context(), account.ID)
			if err != nil {
				log.Error("failed to check membership", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !hasActive {
				log.Warn("no active membership", slog.Int64("account_id", account.ID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("active membership required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
