// Package suspend реализует HTTP-обработчик приостановки членства.
package suspend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/services/membership"
)

// MembershipService определяет методы бизнес-логики приостановки членства.
type MembershipService interface {
	Suspend(ctx context.Context, periodID int64) error
}

// Handler обрабатывает HTTP-запросы приостановки членства.
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
// @Summary Приостановка членства
// @Description Переводит действующий период в suspended, доступно персоналу
// @Tags Memberships
// @Produce  json
// @Security BearerAuth
// @Param periodID path int true "ID периода членства"
// @Success 200 {object} response.Response "Членство приостановлено"
// @Failure 400 {object} response.Response "Некорректный ID или недопустимый переход"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Период не найден"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/memberships/{periodID}/suspend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.suspend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	periodID, err := strconv.ParseInt(chi.URLParam(r, "periodID"), 10, 64)
	if err != nil {
		log.Error("invalid period id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid period id"))
		return
	}

	if err := h.membershipService.Suspend(r.Context(), periodID); err != nil {
		switch {
		case errors.Is(err, membership.ErrPeriodNotFound):
			log.Warn("membership period not found", slog.Int64("period_id", periodID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("membership period not found"))
		case errors.Is(err, membership.ErrInvalidTransition):
			log.Warn("invalid status transition", slog.Int64("period_id", periodID))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("only an active membership can be suspended"))
		default:
			log.Error("failed to suspend membership", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to suspend membership"))
		}
		return
	}

	log.Info("membership suspended", slog.Int64("period_id", periodID))
	render.JSON(w, r, response.OK("membership suspended"))
}
