package daily_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackpro/trackagent/internal/http/handlers/stats/daily"
	"github.com/trackpro/trackagent/internal/trackapi"
)

type mockAPI struct {
	DailyFunc     func(ctx context.Context, tok, startDate, endDate string) ([]trackapi.DailyStat, error)
	LinkDailyFunc func(ctx context.Context, tok, linkID, startDate, endDate string) ([]trackapi.DailyStat, error)
}

func (m *mockAPI) GetDailyStats(ctx context.Context, tok, startDate, endDate string) ([]trackapi.DailyStat, error) {
	return m.DailyFunc(ctx, tok, startDate, endDate)
}

func (m *mockAPI) GetLinkDailyStats(ctx context.Context, tok, linkID, startDate, endDate string) ([]trackapi.DailyStat, error) {
	return m.LinkDailyFunc(ctx, tok, linkID, startDate, endDate)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestDailyStatsHandler(t *testing.T) {
	t.Run("default window is last 30 days", func(t *testing.T) {
		api := &mockAPI{
			DailyFunc: func(ctx context.Context, tok, startDate, endDate string) ([]trackapi.DailyStat, error) {
				start, err := time.Parse("2006-01-02", startDate)
				require.NoError(t, err)
				end, err := time.Parse("2006-01-02", endDate)
				require.NoError(t, err)
				require.Equal(t, 30*24*time.Hour, end.Sub(start))
				return []trackapi.DailyStat{{Date: startDate, Entries: 5, Leads: 2}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/stats/daily", nil)
		w := httptest.NewRecorder()

		daily.New(makeLogger(), api).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "entradas")
	})

	t.Run("link_id routes to per-link stats", func(t *testing.T) {
		api := &mockAPI{
			LinkDailyFunc: func(ctx context.Context, tok, linkID, startDate, endDate string) ([]trackapi.DailyStat, error) {
				require.Equal(t, "link-3", linkID)
				require.Equal(t, "2026-08-01", startDate)
				require.Equal(t, "2026-08-30", endDate)
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet,
			"/stats/daily?link_id=link-3&startDate=2026-08-01&endDate=2026-08-30", nil)
		w := httptest.NewRecorder()

		daily.New(makeLogger(), api).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		api := &mockAPI{
			DailyFunc: func(ctx context.Context, tok, startDate, endDate string) ([]trackapi.DailyStat, error) {
				t.Fatal("remote api must not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/stats/daily?startDate=30-08-2026", nil)
		w := httptest.NewRecorder()

		daily.New(makeLogger(), api).ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "2006-01-02")
	})
}
