package app

import (
	"os"
	"testing"
)

var configEnvVars = []string{
	"BOT_TOKEN", "BOT_OPERATOR_ID",
	"DAEMON_HOST", "DAEMON_PORT", "DAEMON_USERNAME", "DAEMON_PASSWORD",
	"DAEMON_RPC_PATH",
	"LOG_LEVEL", "LOG_FORMAT", "METRICS_ADDR",
	"BOT_RATE_LIMIT_RPS", "BOT_RATE_LIMIT_BURST",
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range configEnvVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := LoadConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"BotToken", cfg.BotToken, ""},
		{"OperatorID", cfg.OperatorID, int64(0)},
		{"DaemonHost", cfg.DaemonHost, "localhost"},
		{"DaemonPort", cfg.DaemonPort, 9091},
		{"DaemonUsername", cfg.DaemonUsername, ""},
		{"DaemonPassword", cfg.DaemonPassword, ""},
		{"DaemonRPCPath", cfg.DaemonRPCPath, "/transmission/rpc"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
		{"MetricsAddr", cfg.MetricsAddr, ":9090"},
		{"RateLimitRPS", cfg.RateLimitRPS, 5.0},
		{"RateLimitBurst", cfg.RateLimitBurst, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", tt.got, tt.got, tt.want, tt.want)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	envs := map[string]string{
		"BOT_TOKEN":            "123:abc",
		"BOT_OPERATOR_ID":      "800891816",
		"DAEMON_HOST":          "192.168.1.1",
		"DAEMON_PORT":          "8190",
		"DAEMON_USERNAME":      "torr",
		"DAEMON_PASSWORD":      "secret",
		"DAEMON_RPC_PATH":      "/rpc",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "JSON",
		"METRICS_ADDR":         ":9191",
		"BOT_RATE_LIMIT_RPS":   "2.5",
		"BOT_RATE_LIMIT_BURST": "4",
	}
	for k, v := range envs {
		t.Setenv(k, v)
	}

	cfg := LoadConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"BotToken", cfg.BotToken, "123:abc"},
		{"OperatorID", cfg.OperatorID, int64(800891816)},
		{"DaemonHost", cfg.DaemonHost, "192.168.1.1"},
		{"DaemonPort", cfg.DaemonPort, 8190},
		{"DaemonUsername", cfg.DaemonUsername, "torr"},
		{"DaemonPassword", cfg.DaemonPassword, "secret"},
		{"DaemonRPCPath", cfg.DaemonRPCPath, "/rpc"},
		{"LogLevel", cfg.LogLevel, "debug"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"MetricsAddr", cfg.MetricsAddr, ":9191"},
		{"RateLimitRPS", cfg.RateLimitRPS, 2.5},
		{"RateLimitBurst", cfg.RateLimitBurst, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", tt.got, tt.got, tt.want, tt.want)
			}
		})
	}
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("DAEMON_PORT", "not-a-port")
	t.Setenv("BOT_OPERATOR_ID", "-5")
	t.Setenv("BOT_RATE_LIMIT_RPS", "-1")

	cfg := LoadConfig()

	if cfg.DaemonPort != 9091 {
		t.Errorf("DaemonPort = %d, want default 9091", cfg.DaemonPort)
	}
	if cfg.OperatorID != 0 {
		t.Errorf("OperatorID = %d, want 0 for negative input", cfg.OperatorID)
	}
	if cfg.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v, want default 5", cfg.RateLimitRPS)
	}
}
