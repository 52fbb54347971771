package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr         string
	RealtimeAddr string

	// StoreBackend selects the document backend: memory, postgres, mongo or offline.
	StoreBackend  string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	KafkaBrokers  []string

	JWTSecret    string
	AdminEmail   string
	AuthProvider string

	FirebaseProjectID       string
	FirebaseCredentialsJSON string
	FirebaseAPIKey          string

	UploadDir     string
	PublicBaseURL string

	BackendTimeout time.Duration
	UPIVerifyDelay time.Duration

	LogLevel    string
	LogFormat   string
	SeedCatalog bool
}

// Load reads .env (when present) and then environment variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                    getenv("STYLIQO_ADDR", ":8080"),
		RealtimeAddr:            getenv("REALTIME_ADDR", ":8081"),
		StoreBackend:            strings.ToLower(getenv("STORE_BACKEND", "memory")),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		MongoURI:                getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getenv("MONGODB_DATABASE", "styliqo"),
		KafkaBrokers:            splitList(os.Getenv("KAFKA_BROKERS")),
		JWTSecret:               getenv("JWT_SECRET", "styliqo-dev-secret"),
		AdminEmail:              strings.ToLower(getenv("ADMIN_EMAIL", "admin@gmail.com")),
		AuthProvider:            strings.ToLower(getenv("AUTH_PROVIDER", "local")),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		UploadDir:               getenv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:           getenv("PUBLIC_BASE_URL", "/uploads"),
		BackendTimeout:          getDuration("BACKEND_TIMEOUT", 10*time.Second),
		UPIVerifyDelay:          getDuration("UPI_VERIFY_DELAY", 1500*time.Millisecond),
		LogLevel:                getenv("LOG_LEVEL", "info"),
		LogFormat:               getenv("LOG_FORMAT", "json"),
		SeedCatalog:             getBool("SEED_CATALOG", true),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
