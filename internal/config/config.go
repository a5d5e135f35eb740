package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	External ExternalAPIConfig
	Sync     SyncConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ExternalAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout int
}

type SyncConfig struct {
	Enabled  bool
	Hour     int
	Minute   int
	Timezone string
	// LeagueIDs is the allow-list of tracked competition ids
	LeagueIDs []int
}

// defaultLeagueIDs is the built-in competition allow-list: the major
// European leagues plus UEFA club competitions and the Süper Lig.
var defaultLeagueIDs = []int{2, 3, 39, 61, 78, 135, 140, 203}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "matchcast"),
			Password: getEnv("DB_PASSWORD", "matchcast123"),
			DBName:   getEnv("DB_NAME", "matchcast_core"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		External: ExternalAPIConfig{
			BaseURL: getEnv("FOOTBALL_API_URL", "https://v3.football.api-sports.io"),
			APIKey:  getEnv("FOOTBALL_API_KEY", ""),
			Timeout: getEnvAsInt("FOOTBALL_API_TIMEOUT", 30),
		},
		Sync: SyncConfig{
			Enabled:   getEnvAsBool("SYNC_ENABLED", true),
			Hour:      getEnvAsInt("SYNC_HOUR", 4),
			Minute:    getEnvAsInt("SYNC_MINUTE", 0),
			Timezone:  getEnv("SYNC_TIMEZONE", "Europe/Istanbul"),
			LeagueIDs: getEnvAsIntList("SYNC_LEAGUE_IDS", defaultLeagueIDs),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var ids []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return defaultValue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return defaultValue
	}
	return ids
}

func (c *Config) DatabaseURL() string {
	// If DATABASE_URL is set, use it directly
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	// Otherwise, construct from individual components
	return "postgres://" + c.Database.User + ":" + c.Database.Password +
		"@" + c.Database.Host + ":" + c.Database.Port +
		"/" + c.Database.DBName + "?sslmode=" + c.Database.SSLMode
}
