package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all upstream requests.
const DefaultUserAgent = "ShowFinder/1.0 (+https://github.com/Belphemur/ShowFinder)"

// DefaultTVMazeBaseURL is the API base used for both the search and the episode endpoints.
const DefaultTVMazeBaseURL = "https://api.tvmaze.com"

// DefaultPlaceholderImageURL is rendered for shows that have no image upstream.
const DefaultPlaceholderImageURL = "https://tinyurl.com/tv-missing"

// Summary rendering modes.
const (
	SummaryModeSanitize = "sanitize"
	SummaryModeRaw      = "raw"
	SummaryModeEscape   = "escape"
)

type Config struct {
	TVMazeBaseURL         string `mapstructure:"tvmaze_base_url"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	UserAgent             string `mapstructure:"user_agent"`
	PlaceholderImageURL   string `mapstructure:"placeholder_image_url"`
	CircuitBreaker        struct {
		Enabled          bool   `mapstructure:"enabled"`
		FailureThreshold int    `mapstructure:"failure_threshold"`
		Delay            string `mapstructure:"delay"`
	} `mapstructure:"circuit_breaker"`
	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	GRPC struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"grpc"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Session struct {
		Provider      string `mapstructure:"provider"` // "memory" or "redis"
		Size          int    `mapstructure:"size"`     // Maximum number of live sessions for the memory provider
		TTL           string `mapstructure:"ttl"`      // Go duration string like "30m", "24h", etc.
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"session"`
	Render struct {
		SummaryMode string `mapstructure:"summary_mode"` // "sanitize", "raw" or "escape"
	} `mapstructure:"render"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.applyFallbacks()

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tvmaze_base_url", DefaultTVMazeBaseURL)
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("placeholder_image_url", DefaultPlaceholderImageURL)
	v.SetDefault("circuit_breaker.enabled", false)
	v.SetDefault("circuit_breaker.failure_threshold", 5)
	v.SetDefault("circuit_breaker.delay", "30s")
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.port", 8081)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("session.provider", "memory")
	v.SetDefault("session.size", 10000)
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("render.summary_mode", SummaryModeSanitize)
	v.SetDefault("log_level", "info")
}

// applyFallbacks fills values that an explicit empty setting would otherwise blank out.
func (c *Config) applyFallbacks() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TVMazeBaseURL == "" {
		c.TVMazeBaseURL = DefaultTVMazeBaseURL
	}
	if c.PlaceholderImageURL == "" {
		c.PlaceholderImageURL = DefaultPlaceholderImageURL
	}
	switch c.Render.SummaryMode {
	case SummaryModeSanitize, SummaryModeRaw, SummaryModeEscape:
	default:
		c.Render.SummaryMode = SummaryModeSanitize
	}
}

// ParseDuration parses a Go duration string, falling back to def when the value
// is empty or invalid. Invalid values are logged.
func ParseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("setting", name).Str("value", value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
