package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr        string
	DBPath            string
	PhotoPath         string
	LogLevel          string
	LogFormat         string
	LogFile           string
	NearbyMaxDistance float64
}

func Load() *Config {
	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "/data/shorescore.db"),
		PhotoPath:         getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		LogFile:           getEnv("LOG_FILE", ""),
		NearbyMaxDistance: getEnvFloat("NEARBY_MAX_DISTANCE", 0.5),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// getEnvFloat falls back to defaultVal when the variable is unset, malformed
// or not positive.
func getEnvFloat(key string, defaultVal float64) float64 {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f <= 0 {
		return defaultVal
	}
	return f
}
