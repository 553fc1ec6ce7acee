// Package updatestatus реализует смену статуса плана пользователя из
// панели администратора. Дата теста опциональна: при статусе teste без
// даты сервер сам решает, что делать, при остальных статусах дата
// явно обнуляется.
package updatestatus

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
)

// Request тело запроса на смену статуса плана.
type Request struct {
	PlanStatus   string `json:"status_plano" validate:"required,oneof=ativo teste suspenso cancelado"`
	TrialEndDate string `json:"data_teste,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// StatusUpdater меняет статус плана пользователя на удалённом API.
type StatusUpdater interface {
	UpdateUserPlanStatus(ctx context.Context, tok, userID, status string, trialEnd *time.Time) error
}

func New(log *slog.Logger, api StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.updatestatus.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := chi.URLParam(r, "id")
		if userID == "" {
			log.Error("missing user id in path")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing user id"))
			return
		}

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

		var trialEnd *time.Time
		if req.TrialEndDate != "" {
			parsed, err := time.Parse("2006-01-02", req.TrialEndDate)
			if err != nil {
				log.Error("failed to parse data_teste", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("failed to decode request, field data_teste"))
				return
			}
			trialEnd = &parsed
		}

		tok := middlewarectx.TokenFromContext(r.Context())
		if err := api.UpdateUserPlanStatus(r.Context(), tok, userID, req.PlanStatus, trialEnd); err != nil {
			log.Error("failed to update plan status", slog.String("user_id", userID), sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("plan status updated",
			slog.String("user_id", userID),
			slog.String("status_plano", req.PlanStatus),
		)
		render.JSON(w, r, response.OK())
	}
}
