package trackapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/trackpro/trackagent/internal/models"
)

// Login аутентифицирует пользователя по email и паролю.
// Email должен быть приведён к нижнему регистру вызывающей стороной.
// Любая ошибка авторизации сворачивается в ErrInvalidCredentials;
// точная причина пользователю не показывается.
func (c *Client) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	const op = "trackapi.Login"

	var out loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Senha: senha}, &out)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden) || errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%s: %w: missing token", op, ErrInvalidResponse)
	}
	if out.User.ResolveID() == "" {
		return nil, fmt.Errorf("%s: %w: missing user id", op, ErrInvalidResponse)
	}
	return &LoginResult{Token: out.Token, User: out.User}, nil
}

// VerifyStatus проверяет токен на сервере и возвращает актуальную запись
// пользователя. Вызов идемпотентен и безопасен для повторов. Старые
// серверы отвечают на /auth/verify, новые на /auth/status — клиент
// пробует оба.
func (c *Client) VerifyStatus(ctx context.Context, tok string) (*User, error) {
	const op = "trackapi.VerifyStatus"

	for _, path := range []string{"/auth/status", "/auth/verify"} {
		var out statusResponse
		err := c.doJSON(ctx, http.MethodGet, path, tok, nil, &out)
		if errors.Is(err, errNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if out.User.ResolveID() == "" {
			return nil, fmt.Errorf("%s: %w: missing user id", op, ErrInvalidResponse)
		}
		return &out.User, nil
	}
	return nil, fmt.Errorf("%s: %w: no status endpoint", op, ErrNetwork)
}

// Register регистрирует нового пользователя. Роль и статус плана
// новых аккаунтов фиксированы: user и teste.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	const op = "trackapi.Register"

	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.PlanStatus == "" {
		req.PlanStatus = models.PlanTrial
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Logout существует для симметрии с остальными операциями: в этом
// дизайне на сервере нет сессии, которую нужно инвалидировать.
func (c *Client) Logout(_ context.Context) error {
	return nil
}
