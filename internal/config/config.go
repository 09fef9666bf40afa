package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config carries everything the server reads from the environment
type Config struct {
	ServerAddress  string        `env:"SERVER_ADDRESS" envDefault:":8080"`
	AppBaseURL     string        `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	WorkerEnabled  bool          `env:"REMINDER_WORKER_ENABLED" envDefault:"false"`
	WorkerInterval time.Duration `env:"REMINDER_WORKER_INTERVAL" envDefault:"5m"`
	// Channel chooses the delivery channel; whatsapp is a stub for now
	Channel string `env:"REMINDER_CHANNEL" envDefault:"email"`
	Postgres       PostgresConfig
	SendGrid       SendGridConfig
}

type PostgresConfig struct {
	// DatabaseURL wins when set (hosted deployments provide a single DSN)
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        string `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"postgres"`
	Password    string `env:"DB_PASSWORD"`
	Name        string `env:"DB_NAME" envDefault:"tendertrack"`
	SSLMode     string `env:"DB_SSL_MODE" envDefault:"disable"`
}

type SendGridConfig struct {
	APIKey    string `env:"SENDGRID_API_KEY"`
	FromEmail string `env:"SENDGRID_NOTIFICATIONS_FROM_EMAIL" envDefault:"reminders@tendertrack.app"`
	FromName  string `env:"SENDGRID_FROM_NAME" envDefault:"TenderTrack"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string from the individual parts unless
// a full DATABASE_URL was provided
func (p PostgresConfig) DSN() string {
	if p.DatabaseURL != "" {
		return p.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		p.Host, p.User, p.Password, p.Name, p.Port, p.SSLMode)
}
