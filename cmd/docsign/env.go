package main

import (
	"os"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("DOCSIGN_PRIV_KEY", os.Getenv("HOME")+"/.docsign.priv.key")
}

func defaultDBPath() string {
	return env("DOCSIGN_DB", os.Getenv("HOME")+"/.docsign/data")
}
