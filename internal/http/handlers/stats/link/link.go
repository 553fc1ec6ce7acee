package link

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

// LinkStatsGetter получает показатели одной ссылки с удалённого API.
type LinkStatsGetter interface {
	GetLinkStats(ctx context.Context, tok, linkID string) (*trackapi.LinkStats, error)
}

func New(log *slog.Logger, api LinkStatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.link.New"

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
		stats, err := api.GetLinkStats(r.Context(), tok, linkID)
		if err != nil {
			log.Error("failed to get link stats", slog.String("link_id", linkID), sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("link stats fetched", slog.String("link_id", linkID))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"stats": stats,
		}))
	}
}
