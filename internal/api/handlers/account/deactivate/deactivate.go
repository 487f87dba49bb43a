// Package deactivate реализует HTTP-обработчик деактивации учётной записи.
package deactivate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/middlewarectx"
	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
)

// AuthService определяет методы бизнес-логики для деактивации.
type AuthService interface {
	Deactivate(ctx context.Context, accountID int64) error
}

// Handler обрабатывает HTTP-запросы деактивации учётной записи.
type Handler struct {
	log         *slog.Logger
	authService AuthService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService AuthService) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Деактивация учётной записи
// @Description Выключает учётную запись, выпущенные токены сразу перестают действовать
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Учётная запись деактивирована"
// @Failure 401 {object} response.Response "Требуется аутентификация"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/auth/me [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.deactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	account, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		log.Error("account missing in request context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	if err := h.authService.Deactivate(r.Context(), account.ID); err != nil {
		log.Error("failed to deactivate account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate account"))
		return
	}

	log.Info("account deactivated", slog.Int64("account_id", account.ID))
	render.JSON(w, r, response.OK("account deactivated"))
}
