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

// LinksLister получает ссылки текущего пользователя с удалённого API.
type LinksLister interface {
	ListLinks(ctx context.Context, tok string) ([]trackapi.Link, error)
}

func New(log *slog.Logger, api LinksLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.links.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		tok := middlewarectx.TokenFromContext(r.Context())
		links, err := api.ListLinks(r.Context(), tok)
		if err != nil {
			log.Error("failed to list links", sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("links listed", slog.Int("count", len(links)))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"links": links,
		}))
	}
}
