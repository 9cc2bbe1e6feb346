package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds optional file-based settings layered under the environment.
type Config struct {
	Auction struct {
		DrawPolicy string `yaml:"draw_policy"`
	} `yaml:"auction"`
	Gateway struct {
		PingIntervalSec int `yaml:"ping_interval_sec"`
		WriteTimeoutSec int `yaml:"write_timeout_sec"`
		ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	} `yaml:"gateway"`
}

// ServiceConfig is the resolved runtime configuration. Environment variables
// win over the YAML file; both are optional.
type ServiceConfig struct {
	Port         string
	BackendURL   string
	BackendToken string
	NATSURL      string
	DrawPolicy   string

	GatewayPingInterval time.Duration
	GatewayWriteTimeout time.Duration
	GatewayReadTimeout  time.Duration
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

func resolveConfig() ServiceConfig {
	cfg := ServiceConfig{
		Port:                getEnv("PORT", "8080"),
		BackendURL:          getEnv("BACKEND_URL", ""),
		BackendToken:        getEnv("BACKEND_TOKEN", ""),
		NATSURL:             getEnv("NATS_URL", ""),
		DrawPolicy:          getEnv("DRAW_POLICY", "ORDERED"),
		GatewayPingInterval: time.Duration(getEnvAsInt("GATEWAY_PING_INTERVAL_SEC", 30)) * time.Second,
		GatewayWriteTimeout: time.Duration(getEnvAsInt("GATEWAY_WRITE_TIMEOUT_SEC", 10)) * time.Second,
		GatewayReadTimeout:  time.Duration(getEnvAsInt("GATEWAY_READ_TIMEOUT_SEC", 60)) * time.Second,
	}

	// The YAML file fills in anything the environment left at its default.
	if path := getEnv("CONFIG_PATH", ""); path != "" {
		if file, err := loadConfig(path); err == nil {
			if os.Getenv("DRAW_POLICY") == "" && file.Auction.DrawPolicy != "" {
				cfg.DrawPolicy = file.Auction.DrawPolicy
			}
			if os.Getenv("GATEWAY_PING_INTERVAL_SEC") == "" && file.Gateway.PingIntervalSec > 0 {
				cfg.GatewayPingInterval = time.Duration(file.Gateway.PingIntervalSec) * time.Second
			}
			if os.Getenv("GATEWAY_WRITE_TIMEOUT_SEC") == "" && file.Gateway.WriteTimeoutSec > 0 {
				cfg.GatewayWriteTimeout = time.Duration(file.Gateway.WriteTimeoutSec) * time.Second
			}
			if os.Getenv("GATEWAY_READ_TIMEOUT_SEC") == "" && file.Gateway.ReadTimeoutSec > 0 {
				cfg.GatewayReadTimeout = time.Duration(file.Gateway.ReadTimeoutSec) * time.Second
			}
		}
	}

	return cfg
}
