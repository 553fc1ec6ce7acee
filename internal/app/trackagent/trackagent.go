// Package trackagent собирает локального агента дашборда: хранилища,
// клиента удалённого API, менеджер сессии и локальный HTTP-сервер.
package trackagent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/trackpro/trackagent/internal/config"
	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/session"
	"github.com/trackpro/trackagent/internal/store/flags"
	"github.com/trackpro/trackagent/internal/store/usercache"
	"github.com/trackpro/trackagent/internal/trackapi"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	sessions *session.Manager
	cache    *usercache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	flagStore, err := flags.New(cfg.FlagsPath)
	if err != nil {
		return nil, err
	}

	// Идентификатор устройства выдаётся один раз и переживает логауты
	f := flagStore.Get()
	if f.DeviceID == "" {
		f.DeviceID = uuid.NewString()
		if err := flagStore.Set(f); err != nil {
			return nil, err
		}
	}

	var userCache session.UserCache
	cacheRedis, err := usercache.New(ctx, cfg.RedisConnection)
	switch {
	case err == nil:
		userCache = cacheRedis
	case errors.Is(err, usercache.ErrStorageUnavailable):
		// Работаем дальше без офлайн-кэша: restore останется только
		// с сетевой стратегией
		logger.Warn("offline cache unavailable, degrading", sl.Err(err))
		userCache = usercache.Disabled{}
	default:
		return nil, err
	}

	apiClient := trackapi.NewClient(cfg.RemoteAPI, f.DeviceID)
	sessions := session.NewManager(logger, apiClient, userCache, flagStore)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, sessions, apiClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		sessions: sessions,
		cache:    cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	// Восстановление сессии не должно задерживать старт сервера: UI
	// опрашивает состояние и дорисовывается, когда restore завершится
	go a.sessions.Restore(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.cache != nil {
			a.cache.Db.Close()
		}
		return err
	}
}
