package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Access token (short-lived session credential)
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh token
	RefreshTokenSecret             string
	RefreshTokenExpiryDuration     time.Duration
	RefreshTokenRememberMeDuration time.Duration
	RefreshTokenCookieName         string
	RefreshTokenCookiePath         string

	// Out-of-band tokens
	VerifyTokenExpiryDuration time.Duration
	ResetTokenExpiryDuration  time.Duration
	ResetRequestMinInterval   time.Duration

	// External OAuth providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FirebaseProjectID  string `mapstructure:"FIREBASE_PROJECT_ID"`

	// URLs handed to the front end (OAuth redirects, email callback links)
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	UserCallbackURL string `mapstructure:"USER_CALLBACK_URL"`

	// Outbound email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Refresh-token revocation denylist; empty address disables it
	RedisAddr     string
	RedisPassword string

	// Analytics
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_ISSUER", "biblioteca-multimedia")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("REFRESH_TOKEN_REMEMBER_ME_DURATION", "720h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/auth")
	viper.SetDefault("VERIFY_TOKEN_EXPIRY_DURATION", "30m")
	viper.SetDefault("RESET_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("RESET_REQUEST_MIN_INTERVAL", "5m")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	viper.SetDefault("USER_CALLBACK_URL", "http://localhost:5173")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOr("JWT_EXPIRY_DURATION", 15*time.Minute)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "default_insecure_refresh_secret_please_change_this_!@#$" {
		log.Println("Warning: REFRESH_TOKEN_SECRET not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.RefreshTokenExpiryDuration = parseDurationOr("REFRESH_TOKEN_EXPIRY_DURATION", 24*time.Hour)
	cfg.RefreshTokenRememberMeDuration = parseDurationOr("REFRESH_TOKEN_REMEMBER_ME_DURATION", 30*24*time.Hour)
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.VerifyTokenExpiryDuration = parseDurationOr("VERIFY_TOKEN_EXPIRY_DURATION", 30*time.Minute)
	cfg.ResetTokenExpiryDuration = parseDurationOr("RESET_TOKEN_EXPIRY_DURATION", time.Hour)
	cfg.ResetRequestMinInterval = parseDurationOr("RESET_REQUEST_MIN_INTERVAL", 5*time.Minute)

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FirebaseProjectID = viper.GetString("FIREBASE_PROJECT_ID")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth credentials incomplete. Google sign-in will not function.")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.UserCallbackURL = viper.GetString("USER_CALLBACK_URL")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Outbound email will be logged and dropped.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Refresh-token revocation is disabled.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
