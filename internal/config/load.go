package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values and use the PROMPTDECK_ prefix with
// underscores for nesting, e.g. PROMPTDECK_SERVER_PORT.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PROMPTDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars may carry everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for settings that have a sensible value
// without operator input. Secrets and provider endpoints have no defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("scoring.model_name", "gemini-2.0-flash")
	v.SetDefault("scoring.max_retries", 3)
	v.SetDefault("scoring.retry_delay_seconds", 2)

	v.SetDefault("image_gen.model_name", "dall-e-3")

	v.SetDefault("cards.generation_quota", 10)
	v.SetDefault("cards.subscriber_generations", 100)
	v.SetDefault("cards.plan_price_label", "USD $10/month")

	// Bind nested keys explicitly so AutomaticEnv sees them even when the
	// config file is absent.
	for _, key := range []string{
		"server.port", "server.log_level", "server.allowed_origin",
		"database.url",
		"auth.issuer_url", "auth.audience",
		"scoring.gemini_api_key", "scoring.model_name",
		"scoring.max_retries", "scoring.retry_delay_seconds",
		"image_gen.api_key", "image_gen.model_name", "image_gen.base_url",
		"object_store.bucket", "object_store.region", "object_store.key_prefix",
		"payment.stripe_secret_key", "payment.price_id",
		"payment.success_url", "payment.cancel_url",
		"cards.generation_quota", "cards.subscriber_generations",
		"cards.plan_price_label",
	} {
		// BindEnv only errors when no key is supplied.
		_ = v.BindEnv(key)
	}
}
