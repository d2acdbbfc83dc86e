package config

import (
	"log"
	"os"
	"strconv"
)

const (
	// DefaultReorderLevel is used when a drug record carries no reorder level.
	DefaultReorderLevel = 10
	// DefaultExpiringSoonDays is the alert window for drugs close to expiry.
	DefaultExpiringSoonDays = 30
)

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL            string
	RedisAddress     string
	BearerToken      string
	ReorderLevel     int
	ExpiringSoonDays int
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// LoadThresholds reads the deployment-level inventory thresholds from the
// environment, falling back to the documented defaults.
func LoadThresholds() (reorderLevel, expiringSoonDays int) {
	return getEnvAsInt("REORDER_LEVEL_DEFAULT", DefaultReorderLevel),
		getEnvAsInt("EXPIRING_SOON_DAYS", DefaultExpiringSoonDays)
}

func getEnvAsInt(name string, defaultValue int) int {
	if value, exists := os.LookupEnv(name); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Warning: Invalid integer value for %s, using default: %d", name, defaultValue)
	}
	return defaultValue
}
