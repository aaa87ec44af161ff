// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// Getenv looks up one variable. os.Getenv satisfies it.
type Getenv func(key string) string

type Client struct {
	APIURL   string
	Timeout  time.Duration
	Currency currency.Unit
	Token    string
	LogLevel logrus.Level
}

type Backend struct {
	Port            string
	DatabaseURL     string
	RedisAddr       string
	ProductCacheTTL time.Duration
	Currency        currency.Unit
	LogLevel        logrus.Level
}

func (b Backend) Addr() string {
	return ":" + b.Port
}

func LoadClient(env Getenv) (Client, error) {
	if env == nil {
		env = os.Getenv
	}

	cur, err := parseCurrency(getenv(env, "STOREFRONT_CURRENCY", "USD"))
	if err != nil {
		return Client{}, err
	}

	level, err := parseLevel(getenv(env, "LOG_LEVEL", "info"))
	if err != nil {
		return Client{}, err
	}

	return Client{
		APIURL:   getenv(env, "STOREFRONT_API_URL", "http://localhost:8001/api"),
		Timeout:  parseDuration(getenv(env, "STOREFRONT_API_TIMEOUT", "10s"), 10*time.Second),
		Currency: cur,
		Token:    strings.TrimSpace(env("STOREFRONT_TOKEN")),
		LogLevel: level,
	}, nil
}

func LoadBackend(env Getenv) (Backend, error) {
	if env == nil {
		env = os.Getenv
	}

	databaseURL := getenv(env, "DATABASE_URL", "")
	if databaseURL == "" {
		return Backend{}, fmt.Errorf("DATABASE_URL is empty")
	}

	cur, err := parseCurrency(getenv(env, "CURRENCY", "USD"))
	if err != nil {
		return Backend{}, err
	}

	level, err := parseLevel(getenv(env, "LOG_LEVEL", "info"))
	if err != nil {
		return Backend{}, err
	}

	return Backend{
		Port:            getenv(env, "PORT", "8001"),
		DatabaseURL:     databaseURL,
		RedisAddr:       getenv(env, "REDIS_ADDR", ""),
		ProductCacheTTL: parseDuration(getenv(env, "PRODUCT_CACHE_TTL", "10m"), 10*time.Minute),
		Currency:        cur,
		LogLevel:        level,
	}, nil
}

func getenv(env Getenv, k, def string) string {
	if v := env(k); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// parseDuration falls back to def on garbage or non-positive values.
func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseCurrency(v string) (currency.Unit, error) {
	cur, err := currency.ParseISO(v)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency.ParseISO[%s]: %w", v, err)
	}
	return cur, nil
}

func parseLevel(v string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(v)
	if err != nil {
		return 0, fmt.Errorf("logrus.ParseLevel[%s]: %w", v, err)
	}
	return level, nil
}
