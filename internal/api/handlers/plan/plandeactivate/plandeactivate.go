// Package plandeactivate реализует HTTP-обработчик деактивации тарифа.
package plandeactivate

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
	"github.com/fitflow/fitflow-api/internal/services/plan"
)

// PlanService определяет методы бизнес-логики каталога тарифов.
type PlanService interface {
	Deactivate(ctx context.Context, id int64) error
}

// Handler обрабатывает HTTP-запросы деактивации тарифа.
type Handler struct {
	log         *slog.Logger
	planService PlanService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, planService PlanService) *Handler {
	return &Handler{
		log:         log,
		planService: planService,
	}
}

// ServeHTTP godoc
// @Summary Деактивация тарифа
// @Description Убирает тариф из продажи, уже проданные членства продолжают действовать
// @Tags Plans
// @Produce  json
// @Security BearerAuth
// @Param planID path int true "ID тарифа"
// @Success 200 {object} response.Response "Тариф деактивирован"
// @Failure 400 {object} response.Response "Некорректный ID"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Тариф не найден"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/plans/{planID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.plandeactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	planID, err := strconv.ParseInt(chi.URLParam(r, "planID"), 10, 64)
	if err != nil {
		log.Error("invalid plan id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan id"))
		return
	}

	if err := h.planService.Deactivate(r.Context(), planID); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			log.Warn("plan type not found", slog.Int64("plan_type_id", planID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("plan type not found"))
			return
		}
		log.Error("failed to deactivate plan type", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate plan type"))
		return
	}

	log.Info("plan type deactivated", slog.Int64("plan_type_id", planID))
	render.JSON(w, r, response.OK("plan type deactivated"))
}
