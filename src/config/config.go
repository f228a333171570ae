package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=tourbook port=5432 sslmode=disable TimeZone=UTC"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func APIEnv() string {
	return os.Getenv("API_ENV")
}

func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func StripeSecretKey() string {
	return os.Getenv("STRIPE_SECRET_KEY")
}

func StripeWebhookSecret() string {
	return os.Getenv("STRIPE_WEBHOOK_SECRET")
}

// Currency used for payment intents.
func PaymentCurrency() string {
	if c := os.Getenv("PAYMENT_CURRENCY"); c != "" {
		return c
	}
	return "usd"
}

func RedisURL() string {
	return os.Getenv("REDIS_HOST")
}

func AppHost() string {
	return os.Getenv("APP_HOST")
}

// MaintenanceMode is off unless MAINTENANCE_MODE parses as true.
func MaintenanceMode() bool {
	mm := os.Getenv("MAINTENANCE_MODE")
	if mm == "" {
		return false
	}
	on, err := strconv.ParseBool(mm)
	if err != nil {
		log.Printf("[config] Invalid MAINTENANCE_MODE value %q: %s\n", mm, err.Error())
		return true
	}
	return on
}

// PaymentSyncInterval returns the period of the background payment sync, or
// zero when PAYMENT_SYNC_INTERVAL is unset or invalid.
func PaymentSyncInterval() time.Duration {
	v := os.Getenv("PAYMENT_SYNC_INTERVAL")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] Invalid PAYMENT_SYNC_INTERVAL value %q: %s\n", v, err.Error())
		return 0
	}
	return d
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[config] Invalid %s value %q\n", key, v)
		return fallback
	}
	return n
}

func DatabaseMaxOpenConns() int {
	return intEnv("DATABASE_MAX_OPEN_CONNS", 100)
}

func DatabaseMaxIdleConns() int {
	return intEnv("DATABASE_MAX_IDLE_CONNS", 10)
}

// StripeMaxNetworkRetries caps the SDK's automatic retries of failed requests.
func StripeMaxNetworkRetries() int64 {
	return int64(intEnv("STRIPE_MAX_NETWORK_RETRIES", 2))
}

// PaymentSyncItemTimeout bounds the reconciliation of a single synced payment.
func PaymentSyncItemTimeout() time.Duration {
	if v := os.Getenv("PAYMENT_SYNC_ITEM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[config] Invalid PAYMENT_SYNC_ITEM_TIMEOUT value %q\n", v)
	}
	return 10 * time.Second
}
