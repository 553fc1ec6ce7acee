// Package usercache реализует структурированный локальный кэш: одну
// офлайн-доступную запись пользователя, переживающую перезапуски.
// Запись используется для восстановления сессии, когда удалённый API
// недоступен.
package usercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trackpro/trackagent/internal/config"
	"github.com/trackpro/trackagent/internal/models"
)

// ErrStorageUnavailable локальное хранилище не удалось открыть.
// Приложение в этом случае деградирует до режима без офлайн-кэша.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Ключ единственной резидентной записи. Кэш рассчитан на одного
// активного пользователя на устройство: новая запись целиком
// замещает старую.
const currentKey = "trackagent:user:current"

// Cache кэш одной записи пользователя поверх redis.
type Cache struct {
	Db *redis.Client
}

// New открывает кэш. Вызов идемпотентен; недоступный redis
// превращается в ErrStorageUnavailable.
func New(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "usercache.New"

	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	}
	return &Cache{Db: db}, nil
}

// Put сохраняет запись пользователя. Запись с другим идентификатором
// полностью замещается — кэш никогда не накапливает аккаунты.
func (c *Cache) Put(ctx context.Context, rec *models.CachedUser) error {
	const op = "usercache.Put"

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Set(ctx, currentKey, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCurrent возвращает резидентную запись или nil, если её нет.
// Отсутствие записи не является ошибкой.
func (c *Cache) GetCurrent(ctx context.Context) (*models.CachedUser, error) {
	const op = "usercache.GetCurrent"

	val, err := c.Db.Get(ctx, currentKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var rec models.CachedUser
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

// Clear удаляет запись; вызывается при логауте.
func (c *Cache) Clear(ctx context.Context) error {
	const op = "usercache.Clear"

	if err := c.Db.Del(ctx, currentKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Disabled заглушка кэша для режима без офлайн-хранилища: все операции
// успешны, записей никогда нет.
type Disabled struct{}

func (Disabled) Put(context.Context, *models.CachedUser) error { return nil }

func (Disabled) GetCurrent(context.Context) (*models.CachedUser, error) { return nil, nil }

func (Disabled) Clear(context.Context) error { return nil }
