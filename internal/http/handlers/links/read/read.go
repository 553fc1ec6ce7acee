package read

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
	"github.com/trackpro/trackagent/internal/trackapi"
)

// LinkGetter получает одну ссылку с удалённого API.
type LinkGetter interface {
	GetLink(ctx context.Context, tok, id string) (*trackapi.Link, error)
}

func New(log *slog.Logger, api LinkGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.links.read.New"

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
		link, err := api.GetLink(r.Context(), tok, linkID)
		if err != nil {
			log.Error("failed to read link", slog.String("link_id", linkID), sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("link read", slog.String("link_id", linkID))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"link": link,
		}))
	}
}
