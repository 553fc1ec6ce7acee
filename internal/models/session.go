// Package models содержит доменную модель сессии пользователя дашборда:
// роль, статус плана, активную сессию и её офлайн-проекцию.
// Структуры используются в бизнес-логике и при работе с хранилищами.
package models

import "time"

// Роли пользователя в дашборде.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Статусы плана подписки. Значения приходят с удалённого API как есть.
const (
	PlanActive    = "ativo"
	PlanTrial     = "teste"
	PlanSuspended = "suspenso"
	PlanCanceled  = "cancelado"
)

// Session представляет аутентифицированный контекст пользователя на
// данном устройстве. Одновременно существует не более одной сессии;
// новый логин полностью заменяет предыдущую.
type Session struct {
	UserID       string     // Стабильный идентификатор пользователя
	Email        string     // Электронная почта (хранится в нижнем регистре)
	Name         string     // Отображаемое имя
	Role         string     // admin или user
	PlanStatus   string     // Текущий статус плана
	TrialEndDate *time.Time // Дата окончания пробного периода, только при статусе teste
	Token        string     // Bearer-токен удалённого API
	TokenExpiry  *time.Time // Срок действия токена, извлечённый из его payload
}

// TrialExpired сообщает, истёк ли пробный период на момент now.
// Сравнение строгое: дата окончания, равная now, ещё не считается
// просроченной.
func (s *Session) TrialExpired(now time.Time) bool {
	if s.PlanStatus != PlanTrial || s.TrialEndDate == nil {
		return false
	}
	return now.After(*s.TrialEndDate)
}

// CachedUser офлайн-проекция сессии, хранимая в структурированном кэше.
// Теги json повторяют формат записи исходного дашборда.
type CachedUser struct {
	UUID         string     `json:"uu_id"`
	Email        string     `json:"email"`
	Name         string     `json:"nome"`
	Role         string     `json:"tipo"`
	PlanStatus   string     `json:"status_plano"`
	TrialEndDate *time.Time `json:"data_teste,omitempty"`
	Token        string     `json:"token"`
}

// ToSession восстанавливает сессию из кэшированной записи.
// TokenExpiry не хранится в кэше и заполняется вызывающей стороной.
func (c *CachedUser) ToSession() *Session {
	return &Session{
		UserID:       c.UUID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         c.Role,
		PlanStatus:   c.PlanStatus,
		TrialEndDate: c.TrialEndDate,
		Token:        c.Token,
	}
}

// ToCachedUser строит офлайн-проекцию текущей сессии.
func (s *Session) ToCachedUser() *CachedUser {
	return &CachedUser{
		UUID:         s.UserID,
		Email:        s.Email,
		Name:         s.Name,
		Role:         s.Role,
		PlanStatus:   s.PlanStatus,
		TrialEndDate: s.TrialEndDate,
		Token:        s.Token,
	}
}
