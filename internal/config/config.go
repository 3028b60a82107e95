// Пакет config — загрузка и валидация конфигурации picodrop
// из переменных окружения и аргументов командной строки.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// DefaultPort — порт HTTP-сервера по умолчанию.
const DefaultPort = 8000

// Config содержит все параметры конфигурации picodrop.
type Config struct {
	// Порт HTTP-сервера (опциональный последний аргумент командной строки)
	Port int
	// Путь к корневой директории хранения загрузок (обязательный параметр)
	UploadsDir string
	// Максимальный размер тела запроса загрузки в байтах
	MaxUploadSize int64
	// Путь к TLS сертификату (опционально)
	TLSCert string
	// Путь к TLS приватному ключу (опционально)
	TLSKey string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Директория хранения фиксируется на старте процесса: без неё
// процесс не запускается.
func Load() (*Config, error) {
	cfg := &Config{Port: DefaultPort}

	var err error

	// PD_UPLOADS_DIR — обязательный
	cfg.UploadsDir, err = getEnvRequired("PD_UPLOADS_DIR")
	if err != nil {
		return nil, err
	}

	// PD_MAX_UPLOAD_SIZE — лимит тела загрузки (по умолчанию 5 000 000 байт)
	cfg.MaxUploadSize, err = getEnvInt64("PD_MAX_UPLOAD_SIZE", 5_000_000)
	if err != nil {
		return nil, fmt.Errorf("PD_MAX_UPLOAD_SIZE: %w", err)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("PD_MAX_UPLOAD_SIZE: значение должно быть положительным")
	}

	// PD_TLS_CERT / PD_TLS_KEY — опциональный TLS
	cfg.TLSCert = getEnvDefault("PD_TLS_CERT", "")
	cfg.TLSKey = getEnvDefault("PD_TLS_KEY", "")
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, fmt.Errorf("PD_TLS_CERT и PD_TLS_KEY должны задаваться вместе")
	}

	// PD_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PD_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PD_LOG_LEVEL: %w", err)
	}

	// PD_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("PD_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PD_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// PD_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("PD_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PD_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// ParsePort возвращает порт HTTP-сервера из аргументов командной строки.
// Порт — последний аргумент; при отсутствии аргументов возвращается
// DefaultPort.
func ParsePort(args []string) (int, error) {
	if len(args) == 0 {
		return DefaultPort, nil
	}

	raw := args[len(args)-1]
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("порт должен быть целым числом, получено %q", raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("порт %d вне допустимого диапазона 1-65535", port)
	}
	return port, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt64 возвращает int64 значение переменной окружения или значение по умолчанию.
func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
