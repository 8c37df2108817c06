package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const EnvProduction = "production"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	LLM       LLMConfig
	JobSearch JobSearchConfig
	JWT       JWTConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Region      string
	CORSOrigins []string
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(a.Environment), EnvProduction)
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type LLMConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type JobSearchConfig struct {
	AppID          string
	AppKey         string
	BaseURL        string
	Country        string
	ResultsPerPage int
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var defaultCORSOrigins = []string{
	"https://career-roadmap-ai-l7y9.vercel.app",
	"http://localhost:5173",
}

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "careerpath"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "5000"),
		Region:      opt("APP_REGION", "local"),
		CORSOrigins: splitList(opt("CORS_ORIGINS", strings.Join(defaultCORSOrigins, ","))),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              req("DB_HOST"),
		DBPort:              opt("DB_PORT", "5432"),
		DBName:              req("DB_NAME"),
		DBUser:              req("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:      seconds(opt("DB_CONNECT_TIMEOUT_SECONDS", ""), 5*time.Second),
		PoolMaxConns:        int32(positiveInt(opt("DB_POOL_MAX_CONNS", ""), 10)),
		PoolMinConns:        int32(positiveInt(opt("DB_POOL_MIN_CONNS", ""), 0)),
		PoolMaxConnLifetime: seconds(opt("DB_POOL_MAX_CONN_LIFETIME_SECONDS", ""), time.Hour),
		PoolMaxConnIdleTime: seconds(opt("DB_POOL_MAX_CONN_IDLE_SECONDS", ""), 30*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      seconds(opt("REDIS_TTL", ""), 600*time.Second),
	}

	cfg.LLM = LLMConfig{
		APIKey:      req("GEMINI_API_KEY"),
		Model:       opt("LLM_MODEL", "gemini-2.5-flash"),
		Temperature: temperature(opt("LLM_TEMPERATURE", ""), 0.7),
		Timeout:     seconds(opt("LLM_TIMEOUT_SECONDS", ""), 30*time.Second),
	}

	cfg.JobSearch = JobSearchConfig{
		AppID:          req("ADZUNA_APP_ID"),
		AppKey:         req("ADZUNA_APP_KEY"),
		BaseURL:        opt("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api/jobs"),
		Country:        opt("ADZUNA_COUNTRY", "gb"),
		ResultsPerPage: positiveInt(opt("ADZUNA_RESULTS_PER_PAGE", ""), 5),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: time.Duration(positiveInt(opt("JWT_EXPIRES_IN_MINUTES", ""), 60)) * time.Minute,
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func positiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func seconds(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

func temperature(raw string, def float32) float32 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil || v < 0 || v > 2 {
		return def
	}
	return float32(v)
}
