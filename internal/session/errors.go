package session

import "errors"

var (
	// ErrLoginFailed единственная ошибка, которую видит пользователь при
	// неудачном логине. Точная причина (неверный пароль, кривой ответ
	// сервера, сеть) намеренно не раскрывается — она остаётся в логах.
	ErrLoginFailed = errors.New("invalid credentials or unauthorized user")

	// ErrSuperseded операция завершилась после того, как пользователь
	// успел выйти; её результат отброшен.
	ErrSuperseded = errors.New("session superseded by logout")
)

var (
	errNoCachedRecord = errors.New("no cached record")
	errStaleRecord    = errors.New("cached record is stale")
)
