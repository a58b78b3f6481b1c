package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Geolocation resolver
	GeoProvider   string // "ipinfo" or "maxmind"
	IPInfoBaseURL string
	IPInfoToken   string
	GeoTimeout    time.Duration
	MaxMindDBPath string

	// Server
	Port           string
	CORSOrigins    string
	TrustedProxies []string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "geotrace_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "1h"), time.Hour),

		GeoProvider:   getEnv("GEO_PROVIDER", "ipinfo"),
		IPInfoBaseURL: getEnv("IPINFO_BASE_URL", "https://ipinfo.io"),
		IPInfoToken:   getEnv("IPINFO_TOKEN", ""),
		GeoTimeout:    parseDuration(getEnv("GEO_TIMEOUT", "10s"), 10*time.Second),
		MaxMindDBPath: getEnv("MAXMIND_DB_PATH", "GeoLite2-City.mmdb"),

		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
