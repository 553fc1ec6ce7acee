package trackapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackpro/trackagent/internal/models"
)

// APITime обёртка над time.Time: сервер отдаёт даты то в RFC3339,
// то как "2006-01-02", в зависимости от поколения эндпоинта.
type APITime struct {
	time.Time
}

// UnmarshalJSON принимает RFC3339 и короткий формат даты.
func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported time format: %q", s)
}

// MarshalJSON всегда отдаёт RFC3339.
func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// User запись пользователя в формате удалённого API.
// Идентификатор исторически приходит в одном из трёх полей.
type User struct {
	UserID       string   `json:"userId,omitempty"`
	UUID         string   `json:"uu_id,omitempty"`
	ID           string   `json:"id,omitempty"`
	Email        string   `json:"email"`
	Name         string   `json:"nome,omitempty"`
	Role         string   `json:"tipo"`
	PlanStatus   string   `json:"status_plano,omitempty"`
	TrialEndDate *APITime `json:"data_teste,omitempty"`
	Whatsapp     string   `json:"whatsapp,omitempty"`
}

// ResolveID возвращает идентификатор пользователя с учётом трёх
// унаследованных имён поля, в порядке приоритета userId, uu_id, id.
func (u *User) ResolveID() string {
	switch {
	case u.UserID != "":
		return u.UserID
	case u.UUID != "":
		return u.UUID
	default:
		return u.ID
	}
}

// TrialEnd возвращает дату окончания пробного периода или nil.
func (u *User) TrialEnd() *time.Time {
	if u.TrialEndDate == nil || u.TrialEndDate.IsZero() {
		return nil
	}
	t := u.TrialEndDate.Time
	return &t
}

// ToSession строит доменную сессию из записи API и токена.
// Пустой статус плана трактуется как ativo, как в исходном дашборде.
func (u *User) ToSession(tok string) *models.Session {
	plan := u.PlanStatus
	if plan == "" {
		plan = models.PlanActive
	}
	s := &models.Session{
		UserID:     u.ResolveID(),
		Email:      strings.ToLower(u.Email),
		Name:       u.Name,
		Role:       u.Role,
		PlanStatus: plan,
		Token:      tok,
	}
	if plan == models.PlanTrial {
		s.TrialEndDate = u.TrialEnd()
	}
	return s
}

// LoginResult ответ на успешный логин.
type LoginResult struct {
	Token string
	User  User
}

// RegisterRequest данные регистрации нового пользователя.
type RegisterRequest struct {
	Email      string `json:"email"`
	Senha      string `json:"senha"`
	Name       string `json:"nome"`
	Whatsapp   string `json:"whatsapp"`
	Role       string `json:"tipo"`
	PlanStatus string `json:"status_plano"`
}

// Link запись трекаемой телеграм-ссылки.
type Link struct {
	ID                string   `json:"id,omitempty"`
	UserID            string   `json:"user_id,omitempty"`
	URL               string   `json:"link"`
	Name              string   `json:"nome_link"`
	ExpertAlias       string   `json:"expert_apelido"`
	GroupName         string   `json:"group_name"`
	MetaAPIToken      string   `json:"token_api,omitempty"`
	PixelID           string   `json:"pixel_id,omitempty"`
	TelegramChannelID string   `json:"id_channel_telegram"`
	BioOrExternal     bool     `json:"bio_ou_externo"`
	EntryCount        int      `json:"quantidade_entrada,omitempty"`
	TotalGroupEntries int      `json:"entrada_total_grupo,omitempty"`
	TotalExits        int      `json:"saidas_totais,omitempty"`
	ExitsViaLink      int      `json:"saidas_que_usaram_link,omitempty"`
	LeadCount         int      `json:"lead_count,omitempty"`
	CreatedAt         *APITime `json:"created_at,omitempty"`
}

// GeneralStats агрегированные показатели по всем ссылкам.
type GeneralStats struct {
	TotalLinks     int     `json:"total_links"`
	TotalEntries   int     `json:"total_entradas"`
	TotalLeads     int     `json:"total_leads"`
	ConversionRate float64 `json:"taxa_conversao"`
}

// DailyStat показатели за один день.
type DailyStat struct {
	Date    string `json:"data"`
	Entries int    `json:"entradas"`
	Leads   int    `json:"leads"`
}

// LinkStats показатели одной ссылки.
type LinkStats struct {
	LinkID         string  `json:"link_id"`
	Entries        int     `json:"entradas"`
	Leads          int     `json:"leads"`
	ConversionRate float64 `json:"taxa_conversao"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type statusResponse struct {
	User User `json:"user"`
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type updateStatusRequest struct {
	PlanStatus   string   `json:"status_plano"`
	TrialEndDate *APITime `json:"data_teste"`
}

type usersEnvelope struct {
	Data []User `json:"data"`
}

type linksEnvelope struct {
	Success bool   `json:"success"`
	Links   []Link `json:"links"`
	Message string `json:"message,omitempty"`
}

type linkEnvelope struct {
	Success bool   `json:"success"`
	Link    *Link  `json:"link"`
	Message string `json:"message,omitempty"`
}

type generalStatsEnvelope struct {
	Success bool          `json:"success"`
	Stats   *GeneralStats `json:"stats"`
}

type dailyStatsEnvelope struct {
	Success bool        `json:"success"`
	Stats   []DailyStat `json:"stats"`
}

type linkStatsEnvelope struct {
	Success bool       `json:"success"`
	Stats   *LinkStats `json:"stats"`
}
