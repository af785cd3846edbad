package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

func Config(key string) string {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}

// ConfigInt reads an integer setting, falling back when the variable is
// unset or malformed.
func ConfigInt(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %d", raw, key, fallback)
		return fallback
	}
	return value
}

// MaxOpenJobPosts is the ceiling on simultaneously open job posts per user.
func MaxOpenJobPosts() int {
	return ConfigInt("MAX_OPEN_JOB_POSTS", 2)
}

// MaxPendingRequests is the ceiling on pending contact requests per sender.
func MaxPendingRequests() int {
	return ConfigInt("MAX_PENDING_REQUESTS", 5)
}
