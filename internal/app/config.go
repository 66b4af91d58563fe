package app

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	BotToken   string // required
	OperatorID int64  // required; the only Telegram user the bot obeys

	DaemonHost     string
	DaemonPort     int
	DaemonUsername string
	DaemonPassword string
	DaemonRPCPath  string

	LogLevel  string
	LogFormat string

	MetricsAddr string // empty disables the metrics HTTP server

	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() Config {
	return Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		OperatorID:     getEnvInt64("BOT_OPERATOR_ID", 0),
		DaemonHost:     getEnv("DAEMON_HOST", "localhost"),
		DaemonPort:     int(getEnvInt64("DAEMON_PORT", 9091)),
		DaemonUsername: os.Getenv("DAEMON_USERNAME"),
		DaemonPassword: os.Getenv("DAEMON_PASSWORD"),
		DaemonRPCPath:  getEnv("DAEMON_RPC_PATH", "/transmission/rpc"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		MetricsAddr:    getEnv("METRICS_ADDR", ":9090"),
		RateLimitRPS:   getEnvFloat("BOT_RATE_LIMIT_RPS", 5),
		RateLimitBurst: int(getEnvInt64("BOT_RATE_LIMIT_BURST", 10)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	if parsed < 0 {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
