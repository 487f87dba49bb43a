// Package membershiplist реализует HTTP-обработчик истории членств.
package membershiplist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Response — история членств учётной записи, новые первыми.
type Response struct {
	response.Response
	Memberships []*models.MembershipSummary `json:"memberships"`
}

// MembershipService определяет методы бизнес-логики истории членств.
type MembershipService interface {
	History(ctx context.Context, accountID int64) ([]*models.MembershipSummary, error)
}

// Handler обрабатывает HTTP-запросы истории членств.
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
// @Summary История членств
// @Description Возвращает все периоды членства учётной записи с вычисленным статусом
// @Tags Memberships
// @Produce  json
// @Security BearerAuth
// @Param accountID path int true "ID учётной записи"
// @Success 200 {object} Response "История членств"
// @Failure 400 {object} response.Response "Некорректный ID"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/accounts/{accountID}/memberships [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.membershiplist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		log.Error("invalid account id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid account id"))
		return
	}

	memberships, err := h.membershipService.History(r.Context(), accountID)
	if err != nil {
		log.Error("failed to list memberships", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list memberships"))
		return
	}

	render.JSON(w, r, Response{
		Response:    response.OK(""),
		Memberships: memberships,
	})
}
