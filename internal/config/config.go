package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`

	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	AccessSecret     string        `mapstructure:"access_secret"`
	RefreshSecret    string        `mapstructure:"refresh_secret"`
	ActivationSecret string        `mapstructure:"activation_secret"`
	AccessTTL        time.Duration `mapstructure:"access_ttl"`
	RefreshTTL       time.Duration `mapstructure:"refresh_ttl"`
	ActivationTTL    time.Duration `mapstructure:"activation_ttl"`

	RabbitURL      string `mapstructure:"rabbit_url"`
	RabbitExchange string `mapstructure:"rabbit_exchange"`
	RabbitQueue    string `mapstructure:"rabbit_queue"`
	RabbitBindKey  string `mapstructure:"rabbit_bind_key"`
	Concurrency    int    `mapstructure:"concurrency"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`

	S3Endpoint      string `mapstructure:"s3_endpoint"`
	S3Region        string `mapstructure:"s3_region"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3AccessKey     string `mapstructure:"s3_access_key"`
	S3SecretKey     string `mapstructure:"s3_secret_key"`
	S3PublicBaseURL string `mapstructure:"s3_public_base_url"`

	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	GoogleRedirectURL  string `mapstructure:"google_redirect_url"`
	OAuthStateSecret   string `mapstructure:"oauth_state_secret"`

	CORSOrigins     []string `mapstructure:"cors_origins"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`

	DDEnabled bool   `mapstructure:"dd_enabled"`
	DDService string `mapstructure:"dd_service"`
}

// Load reads config.yaml (optional) and environment variables, e.g. MONGO_URI or ACCESS_TTL.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// comma separated list from env
	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", "8000")

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "inventory")

	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("access_secret", "")
	v.SetDefault("refresh_secret", "")
	v.SetDefault("activation_secret", "")
	v.SetDefault("access_ttl", "5m")
	v.SetDefault("refresh_ttl", "72h")
	v.SetDefault("activation_ttl", "5m")

	v.SetDefault("rabbit_url", "")
	v.SetDefault("rabbit_exchange", "inventory.events")
	v.SetDefault("rabbit_queue", "inventory.mail")
	v.SetDefault("rabbit_bind_key", "mail.#")
	v.SetDefault("concurrency", 4)

	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "no-reply@inventory.local")

	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_bucket", "inventory")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_public_base_url", "")

	v.SetDefault("google_client_id", "")
	v.SetDefault("google_client_secret", "")
	v.SetDefault("google_redirect_url", "http://localhost:8000/api/v1/auth/google/callback")
	v.SetDefault("oauth_state_secret", "")

	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit_per_min", 20)

	v.SetDefault("dd_enabled", false)
	v.SetDefault("dd_service", "inventory-service")
}

func (c Config) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" || c.ActivationSecret == "" {
		return errors.New("config: access, refresh and activation secrets are required")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 || c.ActivationTTL <= 0 {
		return errors.New("config: token ttls must be positive")
	}
	if c.MongoURI == "" || c.MongoDB == "" {
		return errors.New("config: mongo uri and database are required")
	}
	return nil
}

func (c Config) IsProduction() bool { return strings.EqualFold(c.Env, "production") }

func (c Config) S3Enabled() bool { return c.S3Endpoint != "" && c.S3AccessKey != "" }

func (c Config) GoogleEnabled() bool { return c.GoogleClientID != "" && c.GoogleClientSecret != "" }
