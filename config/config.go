package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration parameters, sourced from environment variables.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	// JWT signing key and token lifetime in seconds.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    int    `envconfig:"JWT_TTL" default:"3600"`

	// Password used to seed the default admin user in debug mode.
	// Leave empty to skip seeding.
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Schedule for refreshing the per-table record count gauges.
	GaugeSchedule string `envconfig:"GAUGE_SCHEDULE" default:"@every 5m"`
}

// DSN returns the Data Source Name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// TokenTTL returns the configured JWT lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTL) * time.Second
}

// Load reads the configuration from the environment, falling back to .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
