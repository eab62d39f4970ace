package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the marketplace server.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Database
	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DBDSN    string `env:"DB_DSN_PRIMARY" envDefault:"root@tcp(127.0.0.1:3306)/ecofind?parseTime=true"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"72h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"ecofind_session"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Uploads
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN"`
	GinMode           string `env:"GIN_MODE" envDefault:"release"`
}

// Load reads an optional .env file and then parses the environment.
// A missing .env file is not an error; the process environment is used as-is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}
