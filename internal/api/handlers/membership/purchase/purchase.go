// Package purchase реализует HTTP-обработчик оформления членства.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/lib/validation"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/services/membership"
)

// Request — параметры покупки. Пустая StartDate означает "с сегодняшнего дня".
type Request struct {
	PlanTypeID int64  `json:"planTypeId" validate:"required,gt=0"`
	StartDate  string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Response — оформленное членство.
type Response struct {
	response.Response
	Membership *models.MembershipSummary `json:"membership"`
}

// MembershipService определяет методы бизнес-логики покупки членства.
type MembershipService interface {
	Purchase(ctx context.Context, accountID, planTypeID int64, startDate time.Time) (*models.MembershipSummary, error)
}

// Handler обрабатывает HTTP-запросы покупки членства.
type Handler struct {
	log               *slog.Logger
	membershipService MembershipService
	validate          *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, membershipService MembershipService) *Handler {
	return &Handler{
		log:               log,
		membershipService: membershipService,
		validate:          validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформление членства
// @Description Покупает период членства по активному тарифу
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param accountID path int true "ID учётной записи"
// @Param request body Request true "Тариф и дата начала"
// @Success 201 {object} Response "Членство оформлено"
// @Failure 400 {object} response.Response "Некорректный JSON, тариф не найден или выключен"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 422 {object} response.Response "Ошибка валидации данных"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/accounts/{accountID}/memberships [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.purchase"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, _ = time.Parse("2006-01-02", req.StartDate)
	}

	summary, err := h.membershipService.Purchase(r.Context(), accountID, req.PlanTypeID, startDate)
	if err != nil {
		switch {
		case errors.Is(err, membership.ErrPlanNotFound):
			log.Warn("plan type not found", slog.Int64("plan_type_id", req.PlanTypeID))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("plan type not found"))
		case errors.Is(err, membership.ErrPlanInactive):
			log.Warn("plan type is not active", slog.Int64("plan_type_id", req.PlanTypeID))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("plan type is not active"))
		default:
			log.Error("failed to purchase membership", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to purchase membership"))
		}
		return
	}

	log.Info("membership purchased",
		slog.Int64("account_id", accountID),
		slog.Int64("period_id", summary.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response:   response.OK("membership purchased successfully"),
		Membership: summary,
	})
}
