package register

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
	"github.com/trackpro/trackagent/internal/trackapi"
)

// Request тело запроса на регистрацию нового пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"nome" validate:"required"`
	Whatsapp string `json:"whatsapp" validate:"required"`
}

// Registrar создаёт учётную запись на удалённом API.
type Registrar interface {
	Register(ctx context.Context, req trackapi.RegisterRequest) error
}

func New(log *slog.Logger, api Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

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

		err := api.Register(r.Context(), trackapi.RegisterRequest{
			Email:    req.Email,
			Senha:    req.Password,
			Name:     req.Name,
			Whatsapp: req.Whatsapp,
		})
		if err != nil {
			if errors.Is(err, trackapi.ErrEmailTaken) {
				log.Info("registration rejected: email already registered")
			} else {
				log.Error("failed to register user", sl.Err(err))
			}
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("user registered", slog.String("email", req.Email))
		render.JSON(w, r, response.OK())
	}
}
