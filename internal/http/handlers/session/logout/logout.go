package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/response"
)

// SessionLogouter завершает текущую сессию.
type SessionLogouter interface {
	Logout(ctx context.Context)
}

// New возвращает обработчик выхода. Логаут выполняется локально и не
// может провалиться: оба хранилища чистятся, зависшие операции будут
// отброшены менеджером.
func New(log *slog.Logger, sessions SessionLogouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessions.Logout(r.Context())

		log.Info("session terminated")
		render.JSON(w, r, response.OKWithData(map[string]any{
			"redirect": "/",
		}))
	}
}
