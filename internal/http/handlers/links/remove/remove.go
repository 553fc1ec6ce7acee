package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
)

// LinkRemover удаляет ссылку на удалённом API.
type LinkRemover interface {
	DeleteLink(ctx context.Context, tok, id string) error
}

func New(log *slog.Logger, api LinkRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.links.remove.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		linkID := chi.URLParam(r, "id")
		if linkID == "" {
			log.Error("missing link id in path")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing link id"))
			return
		}

		tok := middlewarectx.TokenFromContext(r.Context())
		if err := api.DeleteLink(r.Context(), tok, linkID); err != nil {
			log.Error("failed to delete link", slog.String("link_id", linkID), sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("link deleted", slog.String("link_id", linkID))
		render.JSON(w, r, response.OK())
	}
}
