// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${JWT_SIGNING_KEY}
// - переопределение настроек переменными окружения (SERVER_PORT и т.п.)
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/logger"
)

// Config: корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	TLS        TLSConfig        `yaml:"tls"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Auth       AuthConfig       `yaml:"auth"`
	Password   PasswordConfig   `yaml:"password"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig: настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host" env:"SERVER_HOST"`
	Port              int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxHeaderBytes    int           `yaml:"max_header_bytes"` // лимит размера заголовков
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`   // лимит размера тела запроса
	Swagger           bool          `yaml:"swagger" env:"SERVER_SWAGGER"`
}

// Addr: адрес для http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TLSConfig: настройки HTTPS.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled" env:"TLS_ENABLED"`
	CertFile   string `yaml:"cert_file" env:"TLS_CERT_FILE"`
	KeyFile    string `yaml:"key_file" env:"TLS_KEY_FILE"`
	MinVersion string `yaml:"min_version"` // "1.2"|"1.3" (1.0/1.1 запрещаем т.к. устарели)
}

// DBConfig: настройки подключения к базе данных.
type DBConfig struct {
	DSN             string        `yaml:"dsn" env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	PingTimeout     time.Duration `yaml:"ping_timeout"`
}

// MigrationsConfig: настройки миграций БД.
type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled" env:"MIGRATIONS_ENABLED"`
	Path    string `yaml:"path"` // source url, например file://migrations/postgres
}

// AuthConfig: настройки аутентификации.
type AuthConfig struct {
	// Header: заголовок с токеном (auth-token или Authorization)
	Header   string        `yaml:"header" env:"AUTH_HEADER"`
	Issuer   string        `yaml:"issuer"`
	Audience string        `yaml:"audience"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"` // 0: бессрочный токен
	JWT      JWTConfig     `yaml:"jwt"`
}

// JWTConfig: как подписываем JWT.
type JWTConfig struct {
	Algorithm  string `yaml:"algorithm"`                         // сейчас поддерживаем только HS256
	SigningKey string `yaml:"signing_key" env:"JWT_SIGNING_KEY"` // может содержать ${JWT_SIGNING_KEY}
}

// PasswordConfig: настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher" env:"PASSWORD_HASHER"` // bcrypt|argon2id
	Argon2 Argon2Config `yaml:"argon2"`
	Bcrypt BcryptConfig `yaml:"bcrypt"`
}

// Argon2Config: параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// BcryptConfig: параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// LogConfig: настройки логирования (zap).
type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`   // debug|info|warn|error
	Format     string `yaml:"format" env:"LOG_FORMAT"` // json|console
	File       string `yaml:"file" env:"LOG_FILE"`
	Stdout     bool   `yaml:"stdout" env:"LOG_STDOUT"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// bcrypt принимает cost в этих пределах
const (
	bcryptMinCost = 4
	bcryptMaxCost = 31
)

var envPattern = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// парсит в структуру, применяет переопределения из окружения,
// проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	// Подставляем переменные окружения в текст YAML:
	// signing_key: "${JWT_SIGNING_KEY}" -> signing_key: "реальное_значение"
	raw = []byte(ExpandEnvStrict(string(raw)))

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана: оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := envPattern.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyEnvOverrides переопределяет настройки переменными окружения
// по тегам env (SERVER_PORT=9090 переопределит server.port).
// Незаданные переменные значения из yaml не трогают.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("переменные окружения: %w", err)
	}
	return nil
}

// ApplyDefaults: дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}

	if cfg.TLS.Enabled && cfg.TLS.MinVersion == "" {
		cfg.TLS.MinVersion = "1.2"
	}

	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 10
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 5
	}
	if cfg.DB.ConnMaxLifetime == 0 {
		cfg.DB.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.DB.PingTimeout == 0 {
		cfg.DB.PingTimeout = 5 * time.Second
	}

	if cfg.Migrations.Path == "" {
		cfg.Migrations.Path = "file://migrations/postgres"
	}

	if cfg.Auth.Header == "" {
		cfg.Auth.Header = "auth-token"
	}
	if cfg.Auth.JWT.Algorithm == "" {
		cfg.Auth.JWT.Algorithm = "HS256"
	}

	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = "bcrypt"
	}
	if cfg.Password.Bcrypt.Cost == 0 {
		cfg.Password.Bcrypt.Cost = 10
	}
	a := &cfg.Password.Argon2
	if a.Time == 0 {
		a.Time = 3
	}
	if a.MemoryKiB == 0 {
		a.MemoryKiB = 64 * 1024
	}
	if a.Threads == 0 {
		a.Threads = 2
	}
	if a.KeyLen == 0 {
		a.KeyLen = 32
	}
	if a.SaltLen == 0 {
		a.SaltLen = 16
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = logger.DefaultOptions().File
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так: возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	// Базовая проверка сервера
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes не может быть отрицательным")
	}

	// TLS/HTTPS
	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
		}
		// TLS 1.0/1.1 считаются небезопасными: запрещаем
		switch c.TLS.MinVersion {
		case "", "1.2", "1.3":
		default:
			return fmt.Errorf("tls.min_version=%s не поддерживается; используй 1.2 или 1.3", c.TLS.MinVersion)
		}
	}

	// База данных
	if c.DB.DSN == "" {
		return errors.New("db.dsn обязателен")
	}
	if strings.Contains(c.DB.DSN, "${") {
		return fmt.Errorf("db.dsn содержит неподставленную переменную: %q", c.DB.DSN)
	}
	if c.Migrations.Enabled && c.Migrations.Path == "" {
		return errors.New("migrations.path обязателен при migrations.enabled=true")
	}

	// JWT
	alg := strings.ToUpper(strings.TrimSpace(c.Auth.JWT.Algorithm))
	if alg != "HS256" {
		return fmt.Errorf("auth.jwt.algorithm должен быть HS256 (сейчас %q)", c.Auth.JWT.Algorithm)
	}

	key := strings.TrimSpace(c.Auth.JWT.SigningKey)
	if key == "" {
		return errors.New("auth.jwt.signing_key обязателен (через ${JWT_SIGNING_KEY} или прямо строкой)")
	}
	// Если ${JWT_SIGNING_KEY} не подставился: значит переменная окружения не задана
	if strings.Contains(key, "${") && strings.Contains(key, "}") {
		return fmt.Errorf("auth.jwt.signing_key содержит неподставленную переменную: %q (нужно задать JWT_SIGNING_KEY)", key)
	}
	// Для HS256 ключ должен быть длинным и случайным
	if len(key) < 32 {
		return fmt.Errorf("auth.jwt.signing_key слишком короткий (%d символов); нужно >= 32", len(key))
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("auth.token_ttl не может быть отрицательным")
	}
	if strings.TrimSpace(c.Auth.Header) == "" {
		return errors.New("auth.header обязателен")
	}

	// Хэширование паролей
	switch strings.ToLower(c.Password.Hasher) {
	case "argon2id":
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	case "bcrypt":
		if c.Password.Bcrypt.Cost < bcryptMinCost || c.Password.Bcrypt.Cost > bcryptMaxCost {
			return fmt.Errorf("password.bcrypt.cost должен быть в диапазоне %d..%d (сейчас %d)",
				bcryptMinCost, bcryptMaxCost, c.Password.Bcrypt.Cost)
		}
	default:
		return fmt.Errorf("password.hasher должен быть argon2id|bcrypt (сейчас %q)", c.Password.Hasher)
	}

	return nil
}

// TokenConfig: параметры выпуска и проверки токенов сессии.
func (c *Config) TokenConfig() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     c.Auth.Issuer,
		Audience:   c.Auth.Audience,
		SigningKey: c.Auth.JWT.SigningKey,
		TTL:        c.Auth.TokenTTL,
	}
}

// PasswordHasher собирает хэшер паролей по секции password.
func (c *Config) PasswordHasher() (crypto.PasswordHasher, error) {
	a := c.Password.Argon2
	return crypto.NewPasswordHasher(c.Password.Hasher, c.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      a.Time,
		MemoryKiB: a.MemoryKiB,
		Threads:   a.Threads,
		KeyLen:    a.KeyLen,
		SaltLen:   a.SaltLen,
	})
}

// LoggerOptions: настройки zap-логгера из секции log.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.DefaultOptions()
	opts.Level = c.Log.Level
	opts.Format = c.Log.Format
	opts.File = c.Log.File
	opts.Stdout = c.Log.Stdout
	if c.Log.MaxSizeMB > 0 {
		opts.MaxSizeMB = c.Log.MaxSizeMB
	}
	if c.Log.MaxBackups > 0 {
		opts.MaxBackups = c.Log.MaxBackups
	}
	if c.Log.MaxAgeDays > 0 {
		opts.MaxAgeDays = c.Log.MaxAgeDays
	}
	return opts
}
