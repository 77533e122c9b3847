package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the run inputs that may come from the environment. Empty
// values are asked for interactively.
type Config struct {
	WeightFile string
	MacrosFile string
	Year       string
}

// Load reads the .env file, if any, and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] Ignoring unreadable .env: %v", err)
	}

	return &Config{
		WeightFile: getEnv("WEIGHT_FILE", ""),
		MacrosFile: getEnv("MACROS_FILE", ""),
		Year:       getEnv("YEAR", ""),
	}
}

// Override returns a copy of c with every non-empty argument replacing the
// matching field.
func (c *Config) Override(weightFile, macrosFile, year string) *Config {
	out := *c
	if weightFile != "" {
		out.WeightFile = weightFile
	}
	if macrosFile != "" {
		out.MacrosFile = macrosFile
	}
	if year != "" {
		out.Year = year
	}
	return &out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
