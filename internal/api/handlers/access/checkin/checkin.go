// Package checkin реализует HTTP-обработчик отметки посещения зала.
//
// Проверка действующего членства выполняется в middleware до обработчика,
// сюда запрос доходит только от владельца активного абонемента.
package checkin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitflow/fitflow-api/internal/api/middlewarectx"
	"github.com/fitflow/fitflow-api/internal/api/response"
)

// Response — подтверждение посещения.
type Response struct {
	response.Response
	CheckedInAt string `json:"checkedInAt"`
}

// Handler обрабатывает HTTP-запросы отметки посещения.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Отметка посещения зала
// @Description Фиксирует вход в зал, требует действующего членства
// @Tags Access
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response "Посещение зафиксировано"
// @Failure 401 {object} response.Response "Требуется аутентификация"
// @Failure 403 {object} response.Response "Нет действующего членства"
// @Router /api/access/checkin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.checkin"

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

	now := time.Now()
	log.Info("member checked in", slog.Int64("account_id", account.ID))
	render.JSON(w, r, Response{
		Response:    response.OK("welcome to the gym"),
		CheckedInAt: now.Format(time.RFC3339),
	})
}
