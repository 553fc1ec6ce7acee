package trackapi

import "errors"

// Типизированные ошибки клиента удалённого API. Транспортные сбои никогда
// не проглатываются — каждый возвращается вызывающей стороне, а та сама
// решает, падать или уходить в офлайн-кэш.
var (
	// ErrInvalidCredentials неверная пара email/пароль при логине.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResponse сервер ответил 2xx, но в теле нет обязательных полей.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrUnauthenticated токен недействителен или истёк (HTTP 401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden операция доступна только администратору (HTTP 403).
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken email уже зарегистрирован (HTTP 402, status=emailexistente).
	ErrEmailTaken = errors.New("email already registered")
	// ErrNetwork транспортный сбой или непонятный ответ сервера.
	ErrNetwork = errors.New("network error")
)

// errNotFound используется внутри клиента для переключения между
// поколениями эндпоинтов проверки статуса.
var errNotFound = errors.New("not found")
