// Package current отдаёт состояние сессии для первой отрисовки UI.
// До завершения восстановления состояние может быть unknown — тогда UI
// рисует каркас по флагам и дожидается следующего опроса.
package current

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/session"
	"github.com/trackpro/trackagent/internal/store/flags"
)

// SessionReader источник текущего состояния сессии и флагов.
type SessionReader interface {
	Current() (session.State, *models.Session)
	Flags() flags.Flags
}

func New(log *slog.Logger, sessions SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.current.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		state, sess := sessions.Current()

		data := map[string]any{
			"state":         string(state),
			"authenticated": state == session.StateAuthenticated,
		}
		if sess != nil {
			data["user"] = map[string]any{
				"id":           sess.UserID,
				"email":        sess.Email,
				"nome":         sess.Name,
				"tipo":         sess.Role,
				"status_plano": sess.PlanStatus,
			}
		} else {
			// Ещё нет сессии: отдаём флаги, по ним UI показывает каркас
			f := sessions.Flags()
			data["flags"] = map[string]any{
				"userType":               f.UserType,
				"userPlanStatus":         f.UserPlanStatus,
				"dashboardAuthenticated": f.Authenticated,
			}
		}

		log.Info("session state reported", slog.String("state", string(state)))
		render.JSON(w, r, response.OKWithData(data))
	}
}
