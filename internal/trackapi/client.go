// Package trackapi реализует клиента удалённого REST API дашборда TrackPro.
//
// Это единственный компонент, которому разрешено ходить в сеть. Все вызовы
// ограничены по времени таймаутом из конфига: зависший запрос превращается
// в ErrNetwork, а не в вечную загрузку.
package trackapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trackpro/trackagent/internal/config"
)

// Client клиент удалённого API.
type Client struct {
	baseURL    string
	deviceID   string
	httpClient *http.Client
}

// NewClient создаёт клиента удалённого API. deviceID отправляется
// с каждым запросом в заголовке X-Device-Id.
func NewClient(cfg config.RemoteAPI, deviceID string) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		deviceID:   deviceID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do выполняет запрос и раскладывает ответ по типизированным ошибкам.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return nil
	}

	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, body.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, req.URL.Path)
	case http.StatusPaymentRequired:
		if body.Status == "emailexistente" {
			return ErrEmailTaken
		}
	}
	if body.Message != "" {
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, body.Message)
	}
	return fmt.Errorf("%w: unexpected status %s", ErrNetwork, resp.Status)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return c.do(req, out)
}

// IsAuthError сообщает, означает ли ошибка проблему с учётными данными
// или токеном, а не с сетью.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrForbidden)
}
