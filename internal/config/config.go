package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port            string
	DataPath        string        // booking CSV
	DBPath          string        // load history database
	SampleSize      int           // raw rows returned with a dashboard
	WatchSource     bool          // invalidate the cache on file changes
	RefreshInterval time.Duration // 0 disables periodic revalidation
	RateLimit       int           // requests per minute per client, 0 disables
	AdminJWTSecret  string        // empty disables admin auth
}

// Defaults
const (
	DefaultPort       = ":8080"
	DefaultDataPath   = "./data/hotel_bookings.csv"
	DefaultDBPath     = ":memory:"
	DefaultSampleSize = 1000
)

// Load 加载配置
func Load() *Config {
	return &Config{
		Port:            getString("PORT", DefaultPort),
		DataPath:        getString("DATA_PATH", DefaultDataPath),
		DBPath:          getString("DB_PATH", DefaultDBPath),
		SampleSize:      getInt("SAMPLE_SIZE", DefaultSampleSize, 1),
		WatchSource:     getBool("WATCH_SOURCE", true),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 0),
		RateLimit:       getInt("RATE_LIMIT", 0, 0),
		AdminJWTSecret:  os.Getenv("ADMIN_JWT_SECRET"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt reads an integer no smaller than floor
func getInt(key string, def, floor int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		log.Printf("[Config] Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using default %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[Config] Invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}
