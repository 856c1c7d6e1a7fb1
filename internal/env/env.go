package env

import (
	"os"
	"strconv"
	"time"
)

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	valAsInt, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return valAsInt
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return boolVal
}

// GetDuration accepts Go durations ("72h") and the day shorthand used by
// token expiry settings ("7d").
func GetDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}

	if n := len(val); n > 1 && val[n-1] == 'd' {
		days, err := strconv.Atoi(val[:n-1])
		if err != nil {
			return fallback
		}
		return time.Duration(days) * 24 * time.Hour
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
