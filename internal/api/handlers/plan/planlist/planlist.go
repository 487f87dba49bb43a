// Package planlist реализует HTTP-обработчик списка активных тарифов.
package planlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Response — список активных тарифов.
type Response struct {
	response.Response
	Plans []*models.PlanType `json:"plans"`
}

// PlanService определяет методы бизнес-логики каталога тарифов.
type PlanService interface {
	ListActive(ctx context.Context) ([]*models.PlanType, error)
}

// Handler обрабатывает HTTP-запросы списка тарифов.
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
// @Summary Список активных тарифов
// @Description Возвращает активные тарифы каталога по возрастанию цены
// @Tags Plans
// @Produce  json
// @Success 200 {object} Response "Список тарифов"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.planlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.planService.ListActive(r.Context())
	if err != nil {
		log.Error("failed to list plan types", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list plan types"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK(""),
		Plans:    plans,
	})
}
