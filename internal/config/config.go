package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins string
	Site        string // site/version tag stamped on leads (crunch, lungeable)

	// Record store
	DatabaseURL string

	// Queue
	AMQPUser string
	AMQPPass string
	AMQPHost string
	AMQPPort string

	// Outbound collaborators
	RelayEndpoint     string
	AnalyticsEndpoint string
	AnalyticsToken    string

	// Lead alert mail
	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
	MailTo   string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Site:        getEnv("SITE_TAG", "crunch"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AMQPUser: getEnv("AMQP_USER", ""),
		AMQPPass: getEnv("AMQP_PASS", ""),
		AMQPHost: getEnv("AMQP_HOST", ""),
		AMQPPort: getEnv("AMQP_PORT", "5672"),

		RelayEndpoint:     getEnv("RELAY_ENDPOINT", ""),
		AnalyticsEndpoint: getEnv("ANALYTICS_ENDPOINT", ""),
		AnalyticsToken:    getEnv("ANALYTICS_TOKEN", ""),

		MailHost: getEnv("MAIL_HOST", ""),
		MailPort: getEnvInt("MAIL_PORT", 587),
		MailUser: getEnv("MAIL_USER", ""),
		MailPass: getEnv("MAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@crunch.fit"),
		MailTo:   getEnv("MAIL_TO", "team@crunch.fit"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
