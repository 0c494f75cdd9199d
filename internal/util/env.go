package util

import "os"

// Getenv will return an environment variable or a default value
func Getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}

	return defaultValue
}

// SetEnv sets an environment variable and returns a function that restores
// the previous value. Intended for tests.
func SetEnv(key, value string) func() {
	prev, found := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		panic(err)
	}

	return func() {
		if found {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}
