// Package login реализует HTTP-обработчик входа в систему.
package login

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

// Request — входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response — ответ с токеном, учётной записью и текущим членством.
type Response struct {
	response.Response
	Token            string                    `json:"token"`
	User             *models.AccountView       `json:"user"`
	ActiveMembership *models.MembershipSummary `json:"activeMembership,omitempty"`
}

// AuthService определяет методы бизнес-логики для входа.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Account, string, error)
}

// MembershipService возвращает текущее членство для ответа на вход.
type MembershipService interface {
	ActiveSummary(ctx context.Context, accountID int64) (*models.MembershipSummary, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log               *slog.Logger
	authService       AuthService
	membershipService MembershipService
	validate          *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService AuthService, membershipService MembershipService) *Handler {
	return &Handler{
		log:               log,
		authService:       authService,
		membershipService: membershipService,
		validate:          validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход в систему
// @Description Проверяет учётные данные и возвращает токен доступа
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email и пароль"
// @Success 200 {object} Response "Успешный вход"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Неверные учётные данные"
// @Failure 422 {object} response.Response "Ошибка валидации данных"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	account, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("login failed")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	activeMembership, err := h.membershipService.ActiveSummary(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to load active membership", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("login success", slog.Int64("account_id", account.ID))
	render.JSON(w, r, Response{
		Response:         response.OK("login successful"),
		Token:            token,
		User:             account.View(),
		ActiveMembership: activeMembership,
	})
}
