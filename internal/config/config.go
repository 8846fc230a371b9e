// Package config handles configuration for the server component,
// including defaults, environment variables, and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the API server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabasePath: path to the SQLite database file.
//   - BlocklistPath: path to the blocked email domains JSON file.
//   - SecretKey: HMAC secret for signing JWTs. Required; the process
//     must not start without it.
//   - Algorithm: JWT signing algorithm (HS256/HS384/HS512).
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes.
//   - AllowedOrigins: CORS origins.
//   - Global/Login/Register rate limits: requests per window.
type Config struct {
	Addr          string
	DatabasePath  string
	BlocklistPath string
	SecretKey     string
	Algorithm     string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AllowedOrigins []string

	GlobalRateLimit  int
	GlobalRateWindow time.Duration

	LoginRateLimit  int
	LoginRateWindow time.Duration

	RegisterRateLimit  int
	RegisterRateWindow time.Duration
}

// ErrMissingSecretKey indicates that SECRET_KEY was not configured.
var ErrMissingSecretKey = errors.New("SECRET_KEY is missing, define it in your environment variables")

// LoadDefaults populates Config with development defaults.
// SecretKey has no default on purpose.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabasePath = "data/app.db"
	c.BlocklistPath = "data/blocked_emails.json"
	c.Algorithm = "HS256"
	c.AccessTokenTTL = 30 * time.Minute
	c.RefreshTokenTTL = 7 * 24 * time.Hour
	c.AllowedOrigins = nil
	c.GlobalRateLimit = 100
	c.GlobalRateWindow = time.Minute
	c.LoginRateLimit = 5
	c.LoginRateWindow = 10 * time.Minute
	c.RegisterRateLimit = 3
	c.RegisterRateWindow = time.Minute
}

// Load builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseEnv накладывает значения из переменных окружения поверх дефолтов
// Имена переменных совпадают с историческими именами деплоя
func (c *Config) parseEnv() {
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("BLOCKLIST_PATH"); v != "" {
		c.BlocklistPath = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("ALGORITHM"); v != "" {
		c.Algorithm = v
	}
	if v, ok := envInt("ACCESS_TOKEN_EXPIRE_MINUTES"); ok {
		c.AccessTokenTTL = time.Duration(v) * time.Minute
	}
	if v, ok := envInt("REFRESH_TOKEN_EXPIRE_DAYS"); ok {
		c.RefreshTokenTTL = time.Duration(v) * 24 * time.Hour
	}
	if v := os.Getenv("URL"); v != "" {
		c.AllowedOrigins = splitOrigins(v)
	}
	if v, ok := envInt("RATE_LIMIT_GLOBAL"); ok {
		c.GlobalRateLimit = v
	}
	if v, ok := envInt("RATE_LIMIT_LOGIN"); ok {
		c.LoginRateLimit = v
	}
	if v, ok := envInt("RATE_LIMIT_REGISTER"); ok {
		c.RegisterRateLimit = v
	}
}

// parseFlags накладывает значения из флагов командной строки
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to run server")
	fs.StringVar(&c.DatabasePath, "d", c.DatabasePath, "path to SQLite database file")
	fs.StringVar(&c.BlocklistPath, "b", c.BlocklistPath, "path to blocked email domains JSON file")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "JWT signing secret")
	fs.StringVar(&c.Algorithm, "alg", c.Algorithm, "JWT signing algorithm")

	accessMinutes := fs.Int("t", int(c.AccessTokenTTL.Minutes()), "access token lifetime (in minutes)")
	refreshDays := fs.Int("r", int(c.RefreshTokenTTL.Hours()/24), "refresh token lifetime (in days)")
	origins := fs.String("o", strings.Join(c.AllowedOrigins, ","), "comma-separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.AccessTokenTTL = time.Duration(*accessMinutes) * time.Minute
	c.RefreshTokenTTL = time.Duration(*refreshDays) * 24 * time.Hour
	c.AllowedOrigins = splitOrigins(*origins)

	return nil
}

// Validate проверяет стартовые инварианты конфигурации
// Ошибка здесь фатальна: процесс не должен стартовать
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm: %q", c.Algorithm)
	}
	if c.BlocklistPath == "" {
		return errors.New("blocklist path is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
