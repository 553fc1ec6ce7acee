package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/trackapi"
)

// UsersLister получает список пользователей с удалённого API.
type UsersLister interface {
	ListUsers(ctx context.Context, tok string) ([]trackapi.User, error)
}

func New(log *slog.Logger, api UsersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		tok := middlewarectx.TokenFromContext(r.Context())
		users, err := api.ListUsers(r.Context(), tok)
		if err != nil {
			log.Error("failed to list users", sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("users listed", slog.Int("count", len(users)))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"users": users,
		}))
	}
}
