// Package middlewarectx содержит HTTP middleware локального API агента:
// проверку активной сессии, ограничение частоты запросов и метрики.
//
// RequireSession пропускает запрос только при состоянии Authenticated,
// добавляя в контекст идентификатор пользователя, роль и токен для
// дальнейших вызовов удалённого API. Вся логика аутентификации живёт в
// менеджере сессии; обработчики — чистые вызыватели.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// Token — ключ для bearer-токена удалённого API в контексте
	Token Key = "token"
)

// SessionSource источник текущей сессии; реализуется менеджером сессии.
type SessionSource interface {
	Current() (session.State, *models.Session)
}

// RequireSession возвращает middleware, пропускающий запросы только при
// активной сессии. Иначе — HTTP 401 Unauthorized.
func RequireSession(sessions SessionSource, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, sess := sessions.Current()
			if state != session.StateAuthenticated || sess == nil {
				log.Info("request rejected: no active session", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}
			ctx := context.WithValue(r.Context(), UserID, sess.UserID)
			ctx = context.WithValue(ctx, Role, sess.Role)
			ctx = context.WithValue(ctx, Token, sess.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает только администраторов. Ставится после
// RequireSession. Настоящая проверка прав выполняется сервером API;
// здесь контрол только прячется от обычных пользователей.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(Role).(string)
			if role != models.RoleAdmin {
				log.Info("request rejected: admin only", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromContext достаёт токен удалённого API, положенный RequireSession.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(Token).(string)
	return tok
}
