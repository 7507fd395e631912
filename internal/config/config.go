package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Переменные окружения, перекрывающие секреты из файла
const (
	EnvDBPassword = "CLINIC_DB_PASSWORD"
	EnvJWTSecret  = "CLINIC_JWT_SECRET"
	EnvRedisAddr  = "CLINIC_REDIS_ADDR"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Tracing   TracingConfig   `toml:"tracing"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig экспорт трейсов по OTLP/gRPC
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"` // host:port
	SampleRatio  float64 `toml:"sample_ratio"`
}

// RedisConfig канал уведомлений об изменениях (опционально)
type RedisConfig struct {
	Enabled       bool   `toml:"enabled"`
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	ChannelPrefix string `toml:"channel_prefix"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
	Leeway    int    `toml:"leeway"` // секунды
}

// RateLimitConfig ограничение публичной подачи заявок, счетчики хранятся в Redis
type RateLimitConfig struct {
	Enabled  bool `toml:"enabled"`
	Requests int  `toml:"requests"` // запросов на окно с одного адреса
	Window   int  `toml:"window"`   // секунды
	FailOpen bool `toml:"fail_open"`
	// Адреса или CIDR прокси, от которых принимается X-Forwarded-For.
	// Пустой список: ключом всегда служит адрес соединения
	TrustedProxies []string `toml:"trusted_proxies"`
}

// ScheduleConfig сетка слотов и ограничения публичной записи
type ScheduleConfig struct {
	Timezone          string `toml:"timezone"`
	OpeningTime       string `toml:"opening_time"`
	LastSlotStart     string `toml:"last_slot_start"`
	ClosingTime       string `toml:"closing_time"`
	SlotStepMinutes   int    `toml:"slot_step_minutes"`
	WeekdayFrom       int    `toml:"weekday_from"` // 0 = воскресенье
	WeekdayTo         int    `toml:"weekday_to"`
	DailyRequestLimit int    `toml:"daily_request_limit"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "clinic_service",
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			ChannelPrefix: "clinic:changes",
		},
		Auth: AuthConfig{
			Leeway: 5,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   60,
			FailOpen: true,
		},
		Schedule: ScheduleConfig{
			Timezone:          domain.DefaultTimezone,
			OpeningTime:       domain.DefaultOpeningTime,
			LastSlotStart:     domain.DefaultLastSlotStart,
			ClosingTime:       domain.DefaultClosingTime,
			SlotStepMinutes:   domain.DefaultSlotStepMinutes,
			WeekdayFrom:       domain.DefaultWeekdayFrom,
			WeekdayTo:         domain.DefaultWeekdayTo,
			DailyRequestLimit: domain.DefaultDailyRequestLimit,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
}

// Validate проверяет обязательные поля и согласованность расписания
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be a valid TCP port (got %d)", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or %s)", ErrInvalidConfig, EnvJWTSecret)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Tracing.Enabled {
		if c.Tracing.OTLPEndpoint == "" {
			return fmt.Errorf("%w: tracing.otlp_endpoint is required when tracing is enabled", ErrInvalidConfig)
		}
		if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
			return fmt.Errorf("%w: tracing.sample_ratio must be within [0, 1]", ErrInvalidConfig)
		}
	}
	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("%w: rate_limit requires redis to be enabled", ErrInvalidConfig)
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("%w: rate_limit.requests and rate_limit.window must be positive", ErrInvalidConfig)
		}
		for _, proxy := range c.RateLimit.TrustedProxies {
			if !validProxy(proxy) {
				return fmt.Errorf("%w: rate_limit.trusted_proxies: %q is not an IP or CIDR", ErrInvalidConfig, proxy)
			}
		}
	}
	if _, err := c.ScheduleSettings(); err != nil {
		return err
	}
	return nil
}

// ScheduleSettings конвертирует секцию [schedule] в доменные настройки
func (c *Config) ScheduleSettings() (domain.ScheduleSettings, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return domain.ScheduleSettings{}, fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}

	opening, err := types.NewTimeStringFromString(c.Schedule.OpeningTime)
	if err != nil {
		return domain.ScheduleSettings{}, fmt.Errorf("%w: schedule.opening_time: %v", ErrInvalidConfig, err)
	}
	lastStart, err := types.NewTimeStringFromString(c.Schedule.LastSlotStart)
	if err != nil {
		return domain.ScheduleSettings{}, fmt.Errorf("%w: schedule.last_slot_start: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(c.Schedule.ClosingTime)
	if err != nil {
		return domain.ScheduleSettings{}, fmt.Errorf("%w: schedule.closing_time: %v", ErrInvalidConfig, err)
	}

	settings := domain.ScheduleSettings{
		Location:          loc,
		OpeningTime:       opening,
		LastSlotStart:     lastStart,
		ClosingTime:       closing,
		SlotStepMinutes:   c.Schedule.SlotStepMinutes,
		WeekdayFrom:       time.Weekday(c.Schedule.WeekdayFrom),
		WeekdayTo:         time.Weekday(c.Schedule.WeekdayTo),
		DailyRequestLimit: c.Schedule.DailyRequestLimit,
	}

	if err := settings.Validate(); err != nil {
		return domain.ScheduleSettings{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return settings, nil
}

func validProxy(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
