package trackapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackpro/trackagent/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.RemoteAPI{BaseURL: srv.URL, RequestTimeout: 5 * time.Second}, "device-1")
}

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "device-1", r.Header.Get("X-Device-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "abc.def.ghi",
			"user": map[string]any{
				"id":           "u1",
				"tipo":         "user",
				"status_plano": "ativo",
			},
		})
	})

	res, err := client.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", res.Token)
	assert.Equal(t, "u1", res.User.ResolveID())
	assert.Equal(t, "user", res.User.Role)
	assert.Equal(t, "ativo", res.User.PlanStatus)
	assert.Equal(t, map[string]string{"email": "user@example.com", "senha": "secret"}, gotBody)
}

func TestLogin_LegacyIDFieldPriority(t *testing.T) {
	tests := []struct {
		name   string
		user   map[string]any
		wantID string
	}{
		{"userId wins", map[string]any{"userId": "a", "uu_id": "b", "id": "c", "tipo": "user"}, "a"},
		{"uu_id over id", map[string]any{"uu_id": "b", "id": "c", "tipo": "user"}, "b"},
		{"plain id", map[string]any{"id": "c", "tipo": "user"}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"token": "t.t.t", "user": tt.user})
			})

			res, err := client.Login(context.Background(), "user@example.com", "secret")
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.User.ResolveID())
		})
	}
}

func TestLogin_InvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing token", map[string]any{"user": map[string]any{"id": "u1"}}},
		{"missing user id", map[string]any{"token": "t.t.t", "user": map[string]any{"tipo": "user"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.body)
			})

			_, err := client.Login(context.Background(), "user@example.com", "secret")
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "senha incorreta"})
	})

	_, err := client.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NetworkError(t *testing.T) {
	client := NewClient(config.RemoteAPI{BaseURL: "http://127.0.0.1:1", RequestTimeout: time.Second}, "")

	_, err := client.Login(context.Background(), "user@example.com", "secret")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestVerifyStatus_Idempotent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok.en.x", r.Header.Get("Authorization"))
		assert.Equal(t, "/auth/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"uu_id": "u1", "tipo": "user", "status_plano": "teste", "data_teste": "2026-09-15"},
		})
	})

	first, err := client.VerifyStatus(context.Background(), "tok.en.x")
	require.NoError(t, err)
	second, err := client.VerifyStatus(context.Background(), "tok.en.x")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "u1", first.ResolveID())
	require.NotNil(t, first.TrialEnd())
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *first.TrialEnd())
}

func TestVerifyStatus_FallsBackToLegacyEndpoint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/status" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "/auth/verify", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1", "tipo": "user"}})
	})

	user, err := client.VerifyStatus(context.Background(), "tok.en.x")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ResolveID())
}

func TestVerifyStatus_Unauthenticated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.VerifyStatus(context.Background(), "expired.token.x")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRegister_EmailTaken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user", body["tipo"])
		assert.Equal(t, "teste", body["status_plano"])

		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "emailexistente"})
	})

	err := client.Register(context.Background(), RegisterRequest{Email: "dup@example.com", Senha: "secret", Name: "Dup"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUserPlanStatus(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/u1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateUserPlanStatus(context.Background(), "tok.en.x", "u1", "suspenso", nil)
	require.NoError(t, err)
	assert.Equal(t, "suspenso", gotBody["status_plano"])
	assert.Nil(t, gotBody["data_teste"])
}

func TestUpdateUserPlanStatus_Forbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.UpdateUserPlanStatus(context.Background(), "tok.en.x", "u1", "ativo", nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListLinks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/links", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"links": []map[string]any{
				{"id": "l1", "link": "https://t.me/+abc", "nome_link": "bot_expert_lp", "quantidade_entrada": 12, "lead_count": 3},
			},
		})
	})

	links, err := client.ListLinks(context.Background(), "tok.en.x")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "l1", links[0].ID)
	assert.Equal(t, 12, links[0].EntryCount)
	assert.Equal(t, 3, links[0].LeadCount)
}

func TestGetDailyStats_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats/daily", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("endDate"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"stats":   []map[string]any{{"data": "2026-08-01", "entradas": 5, "leads": 1}},
		})
	})

	stats, err := client.GetDailyStats(context.Background(), "tok.en.x", "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 5, stats[0].Entries)
}
