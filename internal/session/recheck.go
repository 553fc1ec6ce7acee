package session

import (
	"context"
	"log/slog"

	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/models"
)

// recheckPlan сверяет статус плана с сервером. Вызывается один раз
// после успешного логина или restore; для администраторов пропускается
// целиком. Истёкший пробный период понижается до suspenso: удалённая
// мутация отправляется, но локальное понижение применяется независимо
// от её исхода — окно рассогласования закроется на следующей сверке.
// Ошибки этого фонового потока никогда не показываются пользователю.
func (m *Manager) recheckPlan(ctx context.Context) {
	const op = "session.recheckPlan"

	m.mu.Lock()
	if m.session == nil || m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	if m.session.Role == models.RoleAdmin {
		m.mu.Unlock()
		m.log.Debug("plan re-check skipped for admin", slog.String("op", op))
		return
	}
	start := m.epoch
	tok := m.session.Token
	m.mu.Unlock()

	log := m.log.With(slog.String("op", op))

	user, err := m.api.VerifyStatus(ctx, tok)
	if err != nil {
		log.Warn("plan re-check failed", sl.Err(err))
		return
	}

	sess := user.ToSession(tok)
	m.applyTokenExpiry(sess)

	if sess.TrialExpired(m.now()) {
		log.Info("trial period expired, suspending",
			slog.String("user_id", sess.UserID),
			slog.Time("trial_end", *sess.TrialEndDate),
		)
		if err := m.api.UpdateUserPlanStatus(ctx, tok, sess.UserID, models.PlanSuspended, nil); err != nil {
			log.Warn("remote suspend failed, applying local downgrade anyway", sl.Err(err))
		}
		sess.PlanStatus = models.PlanSuspended
		sess.TrialEndDate = nil
	}

	if !m.commit(start, sess) {
		return
	}
	m.persist(ctx, sess)
}
