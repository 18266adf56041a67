package config

import (
	"log"

	"coachly/models"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminAPIKey       string `mapstructure:"ADMIN_API_KEY"`

	// Redis configuration (slot commit locks + sweeper queue).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling defaults, used until an admin saves a config document.
	Timezone      string `mapstructure:"TIMEZONE"`
	MinLeadDays   int    `mapstructure:"MIN_LEAD_DAYS"`
	MaxLeadDays   int    `mapstructure:"MAX_LEAD_DAYS"`
	BufferMinutes int    `mapstructure:"BUFFER_MINUTES"`

	// Orphaned pending reservations older than this are swept to cancelled.
	PendingTTLMinutes int `mapstructure:"PENDING_TTL_MINUTES"`

	// Zoom Server-to-Server OAuth. All three must be set to enable the
	// meeting integration; otherwise the booking flow skips it.
	ZoomAccountID    string `mapstructure:"ZOOM_ACCOUNT_ID"`
	ZoomClientID     string `mapstructure:"ZOOM_CLIENT_ID"`
	ZoomClientSecret string `mapstructure:"ZOOM_CLIENT_SECRET"`

	// Google Calendar service account. Unset path disables the integration.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// SMTP for confirmation mail.
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      string `mapstructure:"SMTP_PORT"`
	SMTPFrom      string `mapstructure:"SMTP_FROM"`
	OperatorEmail string `mapstructure:"OPERATOR_EMAIL"`
	OperatorName  string `mapstructure:"OPERATOR_NAME"`

	// Bookable session plans (the catalog slice the booking core needs).
	Plans []models.SessionPlan `mapstructure:"plans"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("MIN_LEAD_DAYS", 1)
	viper.SetDefault("MAX_LEAD_DAYS", 60)
	viper.SetDefault("BUFFER_MINUTES", 15)
	viper.SetDefault("PENDING_TTL_MINUTES", 30)
	viper.SetDefault("SMTP_PORT", "587")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// PlanByID resolves a bookable plan from the configured catalog slice.
func PlanByID(id string) (models.SessionPlan, bool) {
	for _, p := range AppConfig.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.SessionPlan{}, false
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// MeetingConfigured reports whether the Zoom integration is fully wired.
func MeetingConfigured() bool {
	c := AppConfig
	return c.ZoomAccountID != "" && c.ZoomClientID != "" && c.ZoomClientSecret != ""
}

// CalendarConfigured reports whether the Google Calendar integration is wired.
func CalendarConfigured() bool {
	return AppConfig.GoogleCredentialsFile != "" && AppConfig.GoogleCalendarID != ""
}
