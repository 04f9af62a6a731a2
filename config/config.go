package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment variables")
	}
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using %.2f", key, v, fallback)
		return fallback
	}
	return f
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// GetEnvList splits a comma-separated env value, dropping empty entries.
func GetEnvList(key string) []string {
	parts := strings.Split(os.Getenv(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ShippingFee is the flat per-order shipping cost.
func ShippingFee() float64 {
	return GetEnvFloat("SHIPPING_FEE", 5.00)
}

func UploadDir() string {
	return GetEnv("UPLOAD_DIR", "uploads")
}
