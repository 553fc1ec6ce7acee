package current_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackpro/trackagent/internal/http/handlers/session/current"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/session"
	"github.com/trackpro/trackagent/internal/store/flags"
)

type mockSessions struct {
	state session.State
	sess  *models.Session
	flags flags.Flags
}

func (m *mockSessions) Current() (session.State, *models.Session) { return m.state, m.sess }
func (m *mockSessions) Flags() flags.Flags                        { return m.flags }

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestCurrentHandler(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		sessions := &mockSessions{
			state: session.StateAuthenticated,
			sess: &models.Session{
				UserID:     "uuid-1",
				Email:      "user@example.com",
				Role:       models.RoleUser,
				PlanStatus: models.PlanTrial,
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		w := httptest.NewRecorder()

		current.New(makeLogger(), sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "authenticated", data["state"])
		assert.Equal(t, true, data["authenticated"])
		user := data["user"].(map[string]any)
		assert.Equal(t, models.PlanTrial, user["status_plano"])
		assert.NotContains(t, data, "flags")
	})

	t.Run("unknown state falls back to flags", func(t *testing.T) {
		sessions := &mockSessions{
			state: session.StateUnknown,
			flags: flags.Flags{
				UserType:       models.RoleAdmin,
				UserPlanStatus: models.PlanActive,
				Authenticated:  true,
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		w := httptest.NewRecorder()

		current.New(makeLogger(), sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "unknown", data["state"])
		assert.Equal(t, false, data["authenticated"])
		fl := data["flags"].(map[string]any)
		assert.Equal(t, models.RoleAdmin, fl["userType"])
		assert.Equal(t, true, fl["dashboardAuthenticated"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		sessions := &mockSessions{state: session.StateUnauthenticated}

		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		w := httptest.NewRecorder()

		current.New(makeLogger(), sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, false, data["authenticated"])
		assert.Nil(t, data["user"])
	})
}
