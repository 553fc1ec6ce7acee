// Package session реализует менеджер сессии — оркестратор поверх
// клиента удалённого API, кодека токена и двух локальных хранилищ.
//
// Менеджер — единственный компонент, который пишет во флаги и в
// офлайн-кэш, поэтому три копии состояния (память, флаги, кэш) не могут
// разъехаться по чужой вине. Все операции терпимы к гонке с логаутом:
// терминальное состояние побеждает, и завершившийся после логаута
// логин или restore никогда не воскрешает аутентифицированную сессию.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/models"
	"github.com/trackpro/trackagent/internal/store/flags"
	"github.com/trackpro/trackagent/internal/token"
	"github.com/trackpro/trackagent/internal/trackapi"
)

// State состояние менеджера сессии, видимое UI.
type State string

const (
	// StateUnknown начальное состояние до попытки восстановления.
	StateUnknown State = "unknown"
	// StateAuthenticating идёт логин.
	StateAuthenticating State = "authenticating"
	// StateAuthenticated есть действующая сессия.
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated сессии нет.
	StateUnauthenticated State = "unauthenticated"
)

// AuthAPI операции удалённого API, нужные менеджеру.
type AuthAPI interface {
	Login(ctx context.Context, email, senha string) (*trackapi.LoginResult, error)
	VerifyStatus(ctx context.Context, tok string) (*trackapi.User, error)
	UpdateUserPlanStatus(ctx context.Context, tok, userID, status string, trialEnd *time.Time) error
}

// UserCache структурированный офлайн-кэш одной записи пользователя.
type UserCache interface {
	Put(ctx context.Context, rec *models.CachedUser) error
	GetCurrent(ctx context.Context) (*models.CachedUser, error)
	Clear(ctx context.Context) error
}

// FlagStore синхронное плоское хранилище флагов сессии.
type FlagStore interface {
	Get() flags.Flags
	Set(flags.Flags) error
	Clear() error
}

// Manager владеет текущей сессией и держит все три хранилища в согласии.
type Manager struct {
	log   *slog.Logger
	api   AuthAPI
	cache UserCache
	flags FlagStore
	now   func() time.Time

	mu      sync.Mutex
	state   State
	session *models.Session
	// epoch растёт на каждом логауте; зависшие операции сверяются с ним
	// перед применением результата
	epoch uint64
}

// NewManager создаёт менеджер в состоянии Unknown.
func NewManager(log *slog.Logger, api AuthAPI, cache UserCache, flagStore FlagStore) *Manager {
	return &Manager{
		log:   log,
		api:   api,
		cache: cache,
		flags: flagStore,
		now:   time.Now,
		state: StateUnknown,
	}
}

// Current возвращает состояние и копию сессии (nil, если сессии нет).
func (m *Manager) Current() (State, *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return m.state, nil
	}
	cp := *m.session
	return m.state, &cp
}

// Flags отдаёт флаги для мгновенной отрисовки UI до завершения restore.
func (m *Manager) Flags() flags.Flags {
	return m.flags.Get()
}

// Login аутентифицирует пользователя. Email приводится к нижнему
// регистру до запроса: сопоставление email нечувствительно к регистру.
// Наружу уходит только ErrLoginFailed, без деталей.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "session.Login"

	email = strings.ToLower(strings.TrimSpace(email))

	m.mu.Lock()
	m.state = StateAuthenticating
	start := m.epoch
	m.mu.Unlock()

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Error("login failed", slog.String("op", op), slog.String("email", email), sl.Err(err))
		m.mu.Lock()
		if m.epoch == start && m.state == StateAuthenticating {
			m.state = StateUnauthenticated
		}
		m.mu.Unlock()
		return nil, ErrLoginFailed
	}

	sess := res.User.ToSession(res.Token)
	if sess.Email == "" {
		sess.Email = email
	}
	m.applyTokenExpiry(sess)

	if !m.commit(start, sess) {
		m.log.Info("login result discarded after logout", slog.String("op", op))
		return nil, ErrSuperseded
	}
	m.log.Info("login succeeded",
		slog.String("op", op),
		slog.String("user_id", sess.UserID),
		slog.String("role", sess.Role),
	)
	m.persist(ctx, sess)
	m.recheckPlan(ctx)

	_, cur := m.Current()
	return cur, nil
}

// Logout завершает сессию: чистит оба хранилища и переводит менеджер в
// Unauthenticated. Вызов во время незавершённого логина или restore
// безопасен — их результат будет отброшен.
func (m *Manager) Logout(ctx context.Context) {
	const op = "session.Logout"

	m.mu.Lock()
	m.epoch++
	m.session = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	if err := m.flags.Clear(); err != nil {
		m.log.Error("failed to clear flags", slog.String("op", op), sl.Err(err))
	}
	if err := m.cache.Clear(ctx); err != nil {
		m.log.Error("failed to clear offline cache", slog.String("op", op), sl.Err(err))
	}
	m.log.Info("logged out", slog.String("op", op))
}

// commit применяет сессию, если с момента start не было логаута.
func (m *Manager) commit(start uint64, sess *models.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != start {
		return false
	}
	m.session = sess
	m.state = StateAuthenticated
	return true
}

// toUnauthenticated переводит менеджер в Unauthenticated и чистит оба
// хранилища, если с момента start не было логаута (после логаута они
// уже чистые).
func (m *Manager) toUnauthenticated(ctx context.Context, start uint64) {
	const op = "session.toUnauthenticated"

	m.mu.Lock()
	if m.epoch != start {
		m.mu.Unlock()
		return
	}
	m.session = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	if err := m.flags.Clear(); err != nil {
		m.log.Error("failed to clear flags", slog.String("op", op), sl.Err(err))
	}
	if err := m.cache.Clear(ctx); err != nil {
		m.log.Error("failed to clear offline cache", slog.String("op", op), sl.Err(err))
	}
}

// persist зеркалит сессию в оба хранилища. Ошибки записи только
// логируются: сессия в памяти остаётся источником истины до следующего
// перезапуска.
func (m *Manager) persist(ctx context.Context, sess *models.Session) {
	const op = "session.persist"

	rec := sess.ToCachedUser()
	userData, err := json.Marshal(rec)
	if err != nil {
		m.log.Error("failed to marshal user data", slog.String("op", op), sl.Err(err))
	}
	// Устаревший блоб для старых компонентов UI
	legacy, _ := json.Marshal(map[string]any{
		"id":    sess.UserID,
		"email": sess.Email,
		"user_metadata": map[string]string{
			"nome": sess.Name,
		},
	})

	cur := m.flags.Get()
	if err := m.flags.Set(flags.Flags{
		AuthToken:      sess.Token,
		UserType:       sess.Role,
		UserID:         sess.UserID,
		UserPlanStatus: sess.PlanStatus,
		Authenticated:  true,
		UserData:       userData,
		DashboardUser:  legacy,
		DeviceID:       cur.DeviceID,
	}); err != nil {
		m.log.Error("failed to persist flags", slog.String("op", op), sl.Err(err))
	}
	if err := m.cache.Put(ctx, rec); err != nil {
		m.log.Error("failed to persist offline record", slog.String("op", op), sl.Err(err))
	}
}

func (m *Manager) applyTokenExpiry(sess *models.Session) {
	claims, err := token.Decode(sess.Token)
	if err != nil {
		// Непрозрачный токен: живём без локальной проверки срока
		return
	}
	sess.TokenExpiry = token.Expiry(claims)
}
