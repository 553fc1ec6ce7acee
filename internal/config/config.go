// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек агента
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	FlagsPath       string `yaml:"flags_path" env:"FLAGS_PATH" env-default:"trackagent_flags.json"`
	RemoteAPI       `yaml:"remote_api"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
}

// RemoteAPI структура для настройки клиента удалённого API дашборда
type RemoteAPI struct {
	BaseURL        string        `yaml:"base_url" env:"REMOTE_API_BASE_URL" env-default:"https://apitrack.trackpro.com.br/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"10s"`
}

// HTTPServer структура для настройки локального сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"127.0.0.1:8099"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"127.0.0.1:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH.
// Если переменная не задана, конфиг собирается из значений окружения
// и значений по умолчанию.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from env: %s", err)
		}
		return &cfg
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"FlagsPath: %s\n"+
			"RemoteAPI:\n"+
			"  BaseURL: %s\n"+
			"  RequestTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n",
		c.Env,
		c.FlagsPath,
		c.BaseURL,
		c.RequestTimeout,
		c.AddressRedis,
		c.User,
		c.DB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
	)
}
