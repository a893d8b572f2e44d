package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

const minJWTSecretLength = 16

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	AdminEmail        string
	JWTSecret         string
	SessionTTL        time.Duration
	KafkaBrokers      []string
	KafkaTopic        string
	BlobUploadURL     string
	BlobFormField     string
	UploadGrace       time.Duration
	LoginBurst        int
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads an optional .env file and the environment, applies
// defaults, and validates basic constraints. POSTGRES_DSN and REDIS_* are
// read by the platform packages when connecting.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        envDefault("KAFKA_TOPIC", "storefront.events"),
		BlobUploadURL:     strings.TrimSpace(os.Getenv("BLOB_UPLOAD_URL")),
		BlobFormField:     envDefault("BLOB_FORM_FIELD", "file"),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if cfg.AdminEmail == "" {
		return Config{}, errors.New("ADMIN_EMAIL is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	hours, err := positiveInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour
	minutes, err := positiveInt("UPLOAD_GRACE_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.UploadGrace = time.Duration(minutes) * time.Minute
	if cfg.LoginBurst, err = positiveInt("LOGIN_BURST", 5); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
