package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Search    SearchConfig
	Domains   DomainsConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTLSec   int
}

type SearchConfig struct {
	APIKey     string
	EngineID   string
	MaxResults int
	TimeoutSec int
	MaxRetries int
}

type DomainsConfig struct {
	Priority        []string
	Denied          []string
	FreshnessMonths int
}

type LLMConfig struct {
	Enabled     bool
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type RateLimitConfig struct {
	SearchCallsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/floatchat")

	viper.SetEnvPrefix("FLOATCHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttlSec", 900)

	viper.SetDefault("search.maxResults", 5)
	viper.SetDefault("search.timeoutSec", 10)
	viper.SetDefault("search.maxRetries", 2)

	viper.SetDefault("domains.priority", []string{
		"incois.gov.in",
		"argo.ucsd.edu",
		"doi.org",
		"ocean-ops.org",
		"usgodae.org",
		"seanoe.org",
		"ncei.noaa.gov",
		"jcommops.org",
		"euro-argo.eu",
		"ifremer.fr",
	})
	viper.SetDefault("domains.denied", []string{
		"facebook.com",
		"twitter.com",
		"instagram.com",
		"contentfarm",
		"ai-written",
		"generated-content",
	})
	viper.SetDefault("domains.freshnessMonths", 24)

	viper.SetDefault("llm.enabled", false)
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.maxTokens", 512)
	viper.SetDefault("llm.timeoutSec", 30)

	viper.SetDefault("ratelimit.searchCallsPerMinute", 5)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
