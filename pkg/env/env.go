package env

import (
	"os"
	"strings"
)

// Get reads an environment variable, falling back when unset or blank.
// Config proper goes through envconfig; this covers the handful of reads
// that happen before config is loaded.
func Get(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}
