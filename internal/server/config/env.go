package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration from environment variables. Deployment
// targets set these through .env (loaded by cmd/server) or the process
// environment; unset variables leave the current value intact.
func parseEnv(config *Config) {
	if v := os.Getenv("MEALY_ENDPOINT_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("MEALY_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("MEALY_JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("MEALY_TOKEN_VALIDITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("MEALY_NUTRITION_API_URL"); v != "" {
		config.NutritionAPIURL = v
	}
	if v := os.Getenv("MEALY_NUTRITION_API_KEY"); v != "" {
		config.NutritionAPIKey = v
	}
	if v := os.Getenv("MEALY_NUTRITION_API_HOST"); v != "" {
		config.NutritionAPIHost = v
	}
	if v := os.Getenv("MEALY_MAIL_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.MailEnabled = enabled
		}
	}
	if v := os.Getenv("MEALY_MAIL_SENDER"); v != "" {
		config.MailSender = v
	}
	if v := os.Getenv("MEALY_MAIL_ADMIN_TO"); v != "" {
		config.MailAdminTo = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		config.AWSRegion = v
	}
}
