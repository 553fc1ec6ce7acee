// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках и секретов.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Удобно использовать в логировании для единообразного вывода ошибок.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret возвращает slog.Attr с усечённым значением секрета (первые 12
// символов). Используется для логирования токенов без раскрытия их целиком.
func Secret(key, value string) slog.Attr {
	if len(value) > 12 {
		value = value[:12] + "..."
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(value),
	}
}
