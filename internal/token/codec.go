// Package token разбирает bearer-токен локально, без обращения к серверу.
//
// Подпись токена здесь не проверяется — она проверяется удалённым API.
// Локальный разбор нужен только для быстрой проверки структуры и срока
// действия, чтобы не ходить в сеть с заведомо негодным токеном.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken означает, что строка не является JWT из трёх сегментов
// с корректным base64url/JSON payload.
var ErrMalformedToken = errors.New("malformed token")

// Decode разбирает токен и возвращает его claims без проверки подписи.
func Decode(tokenStr string) (jwt.MapClaims, error) {
	const op = "token.Decode"

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedToken, err)
	}
	return claims, nil
}

// IsExpired сообщает, истёк ли срок действия токена на момент now.
// Токен без поля exp считается бессрочным — это намеренное послабление,
// унаследованное от исходного дашборда.
func IsExpired(claims jwt.MapClaims, now time.Time) bool {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}

// Expiry возвращает срок действия токена, если поле exp присутствует.
func Expiry(claims jwt.MapClaims) *time.Time {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}
