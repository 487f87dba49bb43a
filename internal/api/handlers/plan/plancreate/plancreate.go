// Package plancreate реализует HTTP-обработчик создания тарифа.
package plancreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/lib/validation"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/services/plan"
)

// Request — параметры нового тарифа. MaxClasses равный -1 означает
// безлимитное число занятий.
type Request struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	DurationDays int     `json:"durationDays" validate:"required,gte=1"`
	MaxClasses   int     `json:"maxClasses" validate:"gte=-1"`
	Description  string  `json:"description,omitempty" validate:"max=500"`
}

// Response — созданный тариф.
type Response struct {
	response.Response
	Plan *models.PlanType `json:"plan"`
}

// PlanService определяет методы бизнес-логики каталога тарифов.
type PlanService interface {
	Create(ctx context.Context, planType models.PlanType) (*models.PlanType, error)
}

// Handler обрабатывает HTTP-запросы создания тарифа.
type Handler struct {
	log         *slog.Logger
	planService PlanService
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, planService PlanService) *Handler {
	return &Handler{
		log:         log,
		planService: planService,
		validate:    validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание тарифа
// @Description Добавляет новый тариф членства в каталог, доступно только администратору
// @Tags Plans
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Параметры тарифа"
// @Success 201 {object} Response "Тариф создан"
// @Failure 400 {object} response.Response "Некорректный JSON или название занято"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 422 {object} response.Response "Ошибка валидации данных"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/plans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.plancreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	created, err := h.planService.Create(r.Context(), models.PlanType{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		MaxClasses:   req.MaxClasses,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, plan.ErrDuplicateName) {
			log.Warn("plan name already exists", slog.String("name", req.Name))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("plan type name already exists"))
			return
		}
		log.Error("failed to create plan type", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create plan type"))
		return
	}

	log.Info("plan type created", slog.Int64("plan_type_id", created.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response: response.OK("plan type created successfully"),
		Plan:     created,
	})
}
