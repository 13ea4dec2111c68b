package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// InitConfig loads a .env file if present. A missing .env is not fatal,
// and neither is a missing variable: the lookups below fall back to
// defaults, so a physics sandbox boots with zero configuration.
func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using defaults and process environment")
		return
	}
	log.Println("loaded environment variables from .env")
}

// GravityX, GravityY, PenetrationThreshold, PenetrationIterations,
// BitmaskGridSize, SimTickHz, BroadcastHz and HTTPAddr each fall back to
// a documented default when the corresponding environment variable is
// unset or unparsable.

func GravityX() float64 {
	return getFloat("GRAVITY_X", 0.0)
}

func GravityY() float64 {
	return getFloat("GRAVITY_Y", -9.8)
}

func PenetrationThreshold() float64 {
	return getFloat("PENETRATION_THRESHOLD", 0.3)
}

func PenetrationIterations() int {
	return getInt("PENETRATION_ITERATIONS", 1)
}

func BitmaskGridSize() int {
	return getInt("BITMASK_GRID_SIZE", 32)
}

func SimTickHz() int {
	return getInt("SIM_TICK_HZ", 120)
}

func BroadcastHz() int {
	return getInt("BROADCAST_HZ", 20)
}

func HTTPAddr() string {
	return getString("HTTP_ADDR", ":8080")
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a float, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an int, using default %v", key, v, fallback)
		return fallback
	}
	return i
}
