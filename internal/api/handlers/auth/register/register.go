// Package register реализует HTTP-обработчик для регистрации новых учётных записей.
package register

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
	"github.com/fitflow/fitflow-api/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,password"`
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// Response — ответ с токеном и данными созданной учётной записи.
type Response struct {
	response.Response
	Token string              `json:"token"`
	User  *models.AccountView `json:"user"`
}

// AuthService определяет методы бизнес-логики для регистрации.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.Account, string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log         *slog.Logger
	authService AuthService
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService AuthService) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация новой учётной записи
// @Description Создает учётную запись с ролью member и сразу выдает токен доступа
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учётной записи"
// @Success 201 {object} Response "Учётная запись создана"
// @Failure 400 {object} response.Response "Некорректный JSON или email уже занят"
// @Failure 422 {object} response.Response "Ошибка валидации данных"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	account, token, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			log.Warn("email already registered", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register account"))
		return
	}

	log.Info("account registered", slog.Int64("account_id", account.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response: response.OK("account created successfully"),
		Token:    token,
		User:     account.View(),
	})
}
