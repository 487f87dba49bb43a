// Package updateprofile реализует HTTP-обработчик обновления профиля.
package updateprofile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/fitflow/fitflow-api/internal/api/middlewarectx"
	"github.com/fitflow/fitflow-api/internal/api/response"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/lib/validation"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Request — новые значения полей профиля.
type Request struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// Response — обновлённая учётная запись.
type Response struct {
	response.Response
	User *models.AccountView `json:"user"`
}

// AuthService определяет методы бизнес-логики для обновления профиля.
type AuthService interface {
	UpdateProfile(ctx context.Context, accountID int64, firstName, lastName string, phone *string) (*models.Account, error)
}

// Handler обрабатывает HTTP-запросы обновления профиля.
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
// @Summary Обновление профиля
// @Description Меняет имя, фамилию и телефон текущего пользователя
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новые значения профиля"
// @Success 200 {object} Response "Профиль обновлён"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Требуется аутентификация"
// @Failure 422 {object} response.Response "Ошибка валидации данных"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /api/auth/me [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updateprofile"

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

	updated, err := h.authService.UpdateProfile(r.Context(), account.ID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("profile updated", slog.Int64("account_id", account.ID))
	render.JSON(w, r, Response{
		Response: response.OK("profile updated successfully"),
		User:     updated.View(),
	})
}
