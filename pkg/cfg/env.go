package cfg

import (
	"os"
	"strings"
)

// String returns the trimmed value of key, or def when it is unset or blank.
func String(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// IsDev reports whether APP_ENV is explicitly set to dev.
func IsDev() bool {
	return strings.EqualFold(String("APP_ENV", ""), "dev")
}
