package constants

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file if there is one. Variables already set in the
// environment win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetCorsOrigins() []string {
	var origins []string
	for _, o := range strings.Split(getEnv("CHORDGUESS_CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func GetMidiPort() int {
	return getEnvInt("CHORDGUESS_MIDI_PORT", 0)
}

// GetDebounce is how long live input must settle before a chord is printed.
func GetDebounce() time.Duration {
	ms := getEnvInt("CHORDGUESS_DEBOUNCE_MS", 50)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

func GetEnvironment() string {
	return getEnv("ENVIRONMENT", "development")
}

// GetSentryDSN is empty when error reporting is off.
func GetSentryDSN() string {
	return getEnv("SENTRY_DSN", "")
}
