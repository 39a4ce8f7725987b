package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config carries every tunable the process reads from the environment.
type Config struct {
	Addr string

	// StoreBackend selects the snapshot store: file, redis or postgres.
	StoreBackend string
	SnapshotPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	DatabaseURL string

	// AdminID is the single identity allowed to reset balances.
	AdminID string

	InputTimeout   time.Duration
	SlotFrameDelay time.Duration
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Addr:           getEnv("KASINO_ADDR", ":8080"),
		StoreBackend:   getEnv("KASINO_STORE", "file"),
		SnapshotPath:   getEnv("KASINO_SNAPSHOT_PATH", "players.json"),
		RedisAddr:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		RedisKey:       getEnv("KASINO_REDIS_KEY", "kasino:ledger"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AdminID:        getEnv("KASINO_ADMIN_ID", ""),
		InputTimeout:   getEnvAsDuration("KASINO_INPUT_TIMEOUT", 30*time.Second),
		SlotFrameDelay: getEnvAsDuration("KASINO_SLOT_FRAME_DELAY", 700*time.Millisecond),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
