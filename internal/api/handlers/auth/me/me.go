// Package me реализует HTTP-обработчик получения профиля текущего пользователя.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/middlewarectx"
	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Response — профиль пользователя с текущим членством.
type Response struct {
	response.Response
	User             *models.AccountView       `json:"user"`
	ActiveMembership *models.MembershipSummary `json:"activeMembership,omitempty"`
}

// MembershipService возвращает текущее членство пользователя.
type MembershipService interface {
	ActiveSummary(ctx context.Context, accountID int64) (*models.MembershipSummary, error)
}

// Handler обрабатывает HTTP-запросы профиля.
type Handler struct {
	log               *slog.Logger
	membershipService MembershipService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, membershipService MembershipService) *Handler {
	return &Handler{
		log:               log,
		membershipService: membershipService,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает учётную запись и её текущее членство
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response "Профиль"
// @Failure 401 {object} response.Response "Требуется аутентификация"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	activeMembership, err := h.membershipService.ActiveSummary(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to load active membership", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, Response{
		Response:         response.OK(""),
		User:             account.View(),
		ActiveMembership: activeMembership,
	})
}
