package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the proposal cache. When disabled, proposals live in process memory.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig carries the curriculum generator defaults applied when a request omits them.
type SchedulerConfig struct {
	Enabled            bool
	ProposalTTL        time.Duration
	StartHour          float64
	EndHour            float64
	MaxSessionsPerDay  int
	MinBreakMinutes    int
	MaxContinuousHours float64
	SkipWeekends       bool
	SkipHolidays       bool
	// Holidays maps YYYY-MM-DD to a holiday name.
	Holidays map[string]string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:            v.GetBool("ENABLE_SCHEDULER"),
		ProposalTTL:        parseDuration(v.GetString("SCHEDULER_PROPOSAL_TTL"), 30*time.Minute),
		StartHour:          v.GetFloat64("SCHEDULER_START_HOUR"),
		EndHour:            v.GetFloat64("SCHEDULER_END_HOUR"),
		MaxSessionsPerDay:  v.GetInt("SCHEDULER_MAX_SESSIONS_PER_DAY"),
		MinBreakMinutes:    v.GetInt("SCHEDULER_MIN_BREAK_MINUTES"),
		MaxContinuousHours: v.GetFloat64("SCHEDULER_MAX_CONTINUOUS_HOURS"),
		SkipWeekends:       v.GetBool("SCHEDULER_SKIP_WEEKENDS"),
		SkipHolidays:       v.GetBool("SCHEDULER_SKIP_HOLIDAYS"),
		Holidays:           parseHolidays(v.GetString("SCHEDULER_HOLIDAYS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "training_scheduler")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SCHEDULER", true)
	v.SetDefault("SCHEDULER_PROPOSAL_TTL", "30m")
	v.SetDefault("SCHEDULER_START_HOUR", 9)
	v.SetDefault("SCHEDULER_END_HOUR", 18)
	v.SetDefault("SCHEDULER_MAX_SESSIONS_PER_DAY", 4)
	v.SetDefault("SCHEDULER_MIN_BREAK_MINUTES", 10)
	v.SetDefault("SCHEDULER_MAX_CONTINUOUS_HOURS", 4)
	v.SetDefault("SCHEDULER_SKIP_WEEKENDS", true)
	v.SetDefault("SCHEDULER_SKIP_HOLIDAYS", true)
	v.SetDefault("SCHEDULER_HOLIDAYS", defaultHolidays)
}

// defaultHolidays lists the 2025 Korean public holidays.
const defaultHolidays = "2025-01-01=New Year's Day," +
	"2025-01-28=Seollal,2025-01-29=Seollal,2025-01-30=Seollal," +
	"2025-03-01=Independence Movement Day,2025-03-03=Substitute Holiday," +
	"2025-05-05=Children's Day,2025-05-06=Buddha's Birthday Substitute Holiday," +
	"2025-06-06=Memorial Day,2025-08-15=Liberation Day," +
	"2025-10-03=National Foundation Day," +
	"2025-10-05=Chuseok,2025-10-06=Chuseok,2025-10-07=Chuseok,2025-10-08=Substitute Holiday," +
	"2025-10-09=Hangul Day,2025-12-25=Christmas Day"

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseHolidays reads "date=name" pairs. A bare date gets the name "Holiday"; malformed dates are ignored.
func parseHolidays(raw string) map[string]string {
	holidays := make(map[string]string)
	for _, entry := range splitAndTrim(raw) {
		date, name, found := strings.Cut(entry, "=")
		date = strings.TrimSpace(date)
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		name = strings.TrimSpace(name)
		if !found || name == "" {
			name = "Holiday"
		}
		holidays[date] = name
	}
	return holidays
}
