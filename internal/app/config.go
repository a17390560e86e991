package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/utils"
)

type Config struct {
	ServiceName string   `yaml:"service_name"`
	Environment string   `yaml:"environment"`
	HTTPPort    string   `yaml:"http_port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoadConfig reads the optional YAML file at CONFIG_PATH, then lets
// environment variables override individual fields.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ServiceName: "labnote",
		Environment: "development",
		HTTPPort:    "8080",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Info("config file loaded", "path", path)
	}

	cfg.ServiceName = utils.GetEnv("SERVICE_NAME", cfg.ServiceName, log)
	cfg.Environment = utils.GetEnv("ENVIRONMENT", cfg.Environment, log)
	cfg.HTTPPort = utils.GetEnv("HTTP_PORT", cfg.HTTPPort, log)
	if origins := utils.GetEnv("CORS_ORIGINS", "", log); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.CORSOrigins = cfg.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, p)
			}
		}
	}
	return cfg, nil
}
