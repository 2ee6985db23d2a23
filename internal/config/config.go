package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"       validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"     validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"         validate:"required"`
	Scoring     ScoringConfig     `mapstructure:"scoring"      validate:"required"`
	ImageGen    ImageGenConfig    `mapstructure:"image_gen"    validate:"required"`
	ObjectStore ObjectStoreConfig `mapstructure:"object_store" validate:"required"`
	Payment     PaymentConfig     `mapstructure:"payment"      validate:"required"`
	Cards       CardsConfig       `mapstructure:"cards"        validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigin is the browser origin permitted to call the API.
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig describes the external identity provider whose tokens the API
// accepts. The provider issues and manages identities; this service only
// verifies its signatures via JWKS.
type AuthConfig struct {
	IssuerURL string `mapstructure:"issuer_url" validate:"required,url"`
	Audience  string `mapstructure:"audience"   validate:"required"`
}

// ScoringConfig contains settings for the guess-scoring LLM integration.
type ScoringConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=30"`
}

// ImageGenConfig contains settings for the image-generation API.
type ImageGenConfig struct {
	APIKey    string `mapstructure:"api_key"    validate:"required"`
	ModelName string `mapstructure:"model_name" validate:"required"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `mapstructure:"base_url"`
}

// ObjectStoreConfig contains settings for the durable image store.
type ObjectStoreConfig struct {
	Bucket string `mapstructure:"bucket" validate:"required"`
	Region string `mapstructure:"region" validate:"required"`
	// KeyPrefix is prepended to every stored object key.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// PaymentConfig contains settings for the checkout provider.
type PaymentConfig struct {
	StripeSecretKey string `mapstructure:"stripe_secret_key" validate:"required"`
	PriceID         string `mapstructure:"price_id"          validate:"required"`
	// SuccessURL and CancelURL are the browser return addresses; the success
	// URL must carry the session id for later verification.
	SuccessURL string `mapstructure:"success_url" validate:"required,url"`
	CancelURL  string `mapstructure:"cancel_url"  validate:"required,url"`
}

// CardsConfig contains the product rules around card generation.
type CardsConfig struct {
	// GenerationQuota is the per-user cap on generated cards.
	GenerationQuota int `mapstructure:"generation_quota" validate:"required,gt=0"`
	// SubscriberGenerations is the monthly allowance advertised with the
	// subscription plan, surfaced in the profile response.
	SubscriberGenerations int `mapstructure:"subscriber_generations" validate:"required,gt=0"`
	// PlanPriceLabel is the human-readable plan price shown to subscribers.
	PlanPriceLabel string `mapstructure:"plan_price_label" validate:"required"`
}
