package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig   `toml:"server"`
	Database      DatabaseConfig `toml:"database"`
	Logs          LogsConfig     `toml:"logs"`
	Metrics       MetricsConfig  `toml:"metrics"`
	Schedule      ScheduleConfig `toml:"schedule"`
	Cache         CacheConfig    `toml:"cache"`
	Directory     ClientConfig   `toml:"directory_service"`
	Notifications ClientConfig   `toml:"notification_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig рабочее расписание консультаций.
// Одно на деплоймент: фиксированное окно работы, длина слота и выходной день.
type ScheduleConfig struct {
	OpenTime            string `toml:"open_time"`             // "09:30"
	CloseTime           string `toml:"close_time"`            // "18:30"
	SlotDurationMinutes int    `toml:"slot_duration_minutes"` // 30 или 60
	ClosedWeekday       string `toml:"closed_weekday"`        // "Sunday"
}

// ToDomain конвертирует настройки расписания в доменную модель с валидацией
func (s *ScheduleConfig) ToDomain() (domain.ScheduleConfig, error) {
	openTime, err := types.NewTimeStringFromString(s.OpenTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.open_time: %w", err)
	}

	closeTime, err := types.NewTimeStringFromString(s.CloseTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.close_time: %w", err)
	}

	if !openTime.IsBefore(closeTime) {
		return domain.ScheduleConfig{}, fmt.Errorf("config: schedule.open_time must be before close_time")
	}

	if s.SlotDurationMinutes <= 0 {
		return domain.ScheduleConfig{}, fmt.Errorf("config: schedule.slot_duration_minutes must be positive")
	}

	weekday, err := parseWeekday(s.ClosedWeekday)
	if err != nil {
		return domain.ScheduleConfig{}, err
	}

	return domain.ScheduleConfig{
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: s.SlotDurationMinutes,
		ClosedWeekday:       weekday,
	}, nil
}

// CacheConfig настройки Redis-кеша доступности
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL возвращает время жизни записи кеша
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ClientConfig настройки HTTP клиента внешнего сервиса
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	return &cfg, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	weekdays := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("config: unknown schedule.closed_weekday %q", s)
	}
	return weekday, nil
}
