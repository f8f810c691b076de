package utils

import (
	"os"
)

// GetEnv returns the value of the environment variable with the given name,
// or the provided default if the variable is unset or empty.
func GetEnv(name string, def string) string {
	val := os.Getenv(name)
	if len(val) > 0 {
		return val
	}

	return def
}
