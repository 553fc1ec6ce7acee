package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/store/flags"
	"github.com/trackpro/trackagent/internal/token"
)

// restoreStrategy один шаг восстановления сессии. Стратегии пробуются
// по порядку; ошибки каждой логируются, а не проглатываются молча.
type restoreStrategy struct {
	name string
	fn   func(ctx context.Context, f flags.Flags) (*models.Session, error)
}

// Restore восстанавливает сессию при старте приложения.
//
// Быстрый локальный путь: если сохранённый токен отсутствует, не
// разбирается или истёк, менеджер сразу уходит в Unauthenticated и
// чистит хранилища — без единого сетевого вызова. Иначе стратегии
// пробуются по порядку: сначала подтверждение на сервере, затем
// офлайн-кэш.
func (m *Manager) Restore(ctx context.Context) {
	const op = "session.Restore"

	m.mu.Lock()
	start := m.epoch
	m.mu.Unlock()

	log := m.log.With(slog.String("op", op))

	f := m.flags.Get()
	if f.AuthToken == "" {
		log.Info("no stored token")
		m.toUnauthenticated(ctx, start)
		return
	}

	claims, err := token.Decode(f.AuthToken)
	if err != nil {
		log.Info("stored token is malformed, logging out locally", sl.Err(err))
		m.toUnauthenticated(ctx, start)
		return
	}
	if token.IsExpired(claims, m.now()) {
		log.Info("stored token is expired, logging out locally", sl.Secret("token", f.AuthToken))
		m.toUnauthenticated(ctx, start)
		return
	}

	for _, strat := range m.restoreStrategies() {
		sess, err := strat.fn(ctx, f)
		if err != nil {
			log.Warn("restore strategy failed", slog.String("strategy", strat.name), sl.Err(err))
			continue
		}
		m.applyTokenExpiry(sess)
		if !m.commit(start, sess) {
			log.Info("restore result discarded after logout")
			return
		}
		log.Info("session restored",
			slog.String("strategy", strat.name),
			slog.String("user_id", sess.UserID),
		)
		m.persist(ctx, sess)
		m.recheckPlan(ctx)
		return
	}

	log.Info("no restore strategy succeeded")
	m.toUnauthenticated(ctx, start)
}

func (m *Manager) restoreStrategies() []restoreStrategy {
	return []restoreStrategy{
		{name: "remote_verify", fn: m.restoreFromRemote},
		{name: "offline_cache", fn: m.restoreFromCache},
	}
}

// restoreFromRemote подтверждает токен на сервере и собирает сессию из
// актуальной записи пользователя.
func (m *Manager) restoreFromRemote(ctx context.Context, f flags.Flags) (*models.Session, error) {
	user, err := m.api.VerifyStatus(ctx, f.AuthToken)
	if err != nil {
		return nil, err
	}
	return user.ToSession(f.AuthToken), nil
}

// restoreFromCache поднимает сессию из офлайн-записи. Запись годится,
// только если её токен всё ещё действителен и она принадлежит тому же
// пользователю, что и флаги.
func (m *Manager) restoreFromCache(ctx context.Context, f flags.Flags) (*models.Session, error) {
	rec, err := m.cache.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errNoCachedRecord
	}
	claims, err := token.Decode(rec.Token)
	if err != nil || token.IsExpired(claims, m.now()) {
		return nil, fmt.Errorf("%w: token no longer valid", errStaleRecord)
	}
	if f.UserID != "" && f.UserID != rec.UUID {
		return nil, fmt.Errorf("%w: flags belong to another user", errStaleRecord)
	}
	return rec.ToSession(), nil
}
