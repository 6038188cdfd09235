package core

import "os"

// GetEnv retrieves an environment variable, checking both the standard name
// and an MSYSPREFIX-prefixed version. Returns the first non-empty value found.
func GetEnv(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return os.Getenv(EnvPrefix + "_" + key)
}
