// Package login реализует HTTP-обработчик входа через локальный API.
// Вход делегируется менеджеру сессии; наружу при любой причине отказа
// уходит один и тот же текст, чтобы не подсказывать перебору паролей,
// существует ли email.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/session"
)

// Request тело запроса на вход.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionLoginer выполняет вход и возвращает установившуюся сессию.
type SessionLoginer interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
}

func New(log *slog.Logger, sessions SessionLoginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		sess, err := sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, session.ErrSuperseded) {
				log.Info("login discarded: logout won the race")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("login canceled"))
				return
			}
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}

		log.Info("user logged in",
			slog.String("user_id", sess.UserID),
			sl.Secret("token", sess.Token),
		)
		render.JSON(w, r, response.OKWithData(map[string]any{
			"user": map[string]any{
				"id":           sess.UserID,
				"email":        sess.Email,
				"nome":         sess.Name,
				"tipo":         sess.Role,
				"status_plano": sess.PlanStatus,
			},
		}))
	}
}
