package general

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

// StatsGetter получает агрегированные показатели с удалённого API.
type StatsGetter interface {
	GetGeneralStats(ctx context.Context, tok string) (*trackapi.GeneralStats, error)
}

func New(log *slog.Logger, api StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.general.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		tok := middlewarectx.TokenFromContext(r.Context())
		stats, err := api.GetGeneralStats(r.Context(), tok)
		if err != nil {
			log.Error("failed to get general stats", sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("general stats fetched", slog.Int("total_links", stats.TotalLinks))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"stats": stats,
		}))
	}
}
