// Package daily отдаёт показатели по дням за период. Период задаётся
// query-параметрами startDate и endDate в формате 2006-01-02; без них
// берутся последние 30 дней. Параметр link_id сужает выборку до одной
// ссылки.
package daily

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/trackapi"
)

const dateLayout = "2006-01-02"

// DailyStatsGetter получает дневные показатели с удалённого API.
type DailyStatsGetter interface {
	GetDailyStats(ctx context.Context, tok, startDate, endDate string) ([]trackapi.DailyStat, error)
	GetLinkDailyStats(ctx context.Context, tok, linkID, startDate, endDate string) ([]trackapi.DailyStat, error)
}

func New(log *slog.Logger, api DailyStatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.daily.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		now := time.Now()
		startDate := r.URL.Query().Get("startDate")
		endDate := r.URL.Query().Get("endDate")
		if startDate == "" {
			startDate = now.AddDate(0, 0, -30).Format(dateLayout)
		}
		if endDate == "" {
			endDate = now.Format(dateLayout)
		}
		for _, d := range []string{startDate, endDate} {
			if _, err := time.Parse(dateLayout, d); err != nil {
				log.Error("invalid date in query", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("dates must be in format 2006-01-02"))
				return
			}
		}

		tok := middlewarectx.TokenFromContext(r.Context())
		linkID := r.URL.Query().Get("link_id")

		var stats []trackapi.DailyStat
		var err error
		if linkID != "" {
			stats, err = api.GetLinkDailyStats(r.Context(), tok, linkID, startDate, endDate)
		} else {
			stats, err = api.GetDailyStats(r.Context(), tok, startDate, endDate)
		}
		if err != nil {
			log.Error("failed to get daily stats", sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("daily stats fetched",
			slog.String("start_date", startDate),
			slog.String("end_date", endDate),
			slog.Int("days", len(stats)),
		)
		render.JSON(w, r, response.OKWithData(map[string]any{
			"stats": stats,
		}))
	}
}
