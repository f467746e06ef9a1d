package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		LogFile  string `envconfig:"LOG_FILE"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		// StaffPins maps staff id to its numeric selector code, e.g. "s1:1234,s2:5678".
		StaffPins map[string]string `envconfig:"STAFF_PINS"`
	} `envconfig:"APP"`

	Booking struct {
		EnforceNonOverlap bool `envconfig:"ENFORCE_NON_OVERLAP" default:"true"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"720"`
	} `envconfig:"JWT"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCreated    string `envconfig:"BOOKING_CREATED"     default:"booking.created"`
			RoomStatusChanged string `envconfig:"ROOM_STATUS_CHANGED" default:"room.status_changed"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Endpoint        string `envconfig:"ENDPOINT"`
			Region          string `envconfig:"REGION"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicURL       string `envconfig:"PUBLIC_URL"`
		} `envconfig:"S3"`
		GenAI struct {
			APIKey         string  `envconfig:"API_KEY"`
			Model          string  `envconfig:"MODEL"           default:"gemini-2.5-flash"`
			Temperature    float32 `envconfig:"TEMPERATURE"     default:"0.7"`
			TimeoutSeconds int     `envconfig:"TIMEOUT_SECONDS" default:"20"`
		} `envconfig:"GENAI"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf *Config
	once sync.Once
)

// Load reads .env when present, then the process environment, which wins on conflicts.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return cfg, nil
}

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		conf = cfg

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized")
	})

	return conf
}
