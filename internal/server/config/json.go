package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mealy-app/backend/internal/flagx"
	"github.com/mealy-app/backend/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for lifetime fields, which allows parsing
// both string values such as "168h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	NutritionAPIURL       string         `json:"nutrition_api_url"`
	NutritionAPIKey       string         `json:"nutrition_api_key"`
	NutritionAPIHost      string         `json:"nutrition_api_host"`
	NutritionTimeout      timex.Duration `json:"nutrition_timeout"`
	MailEnabled           bool           `json:"mail_enabled"`
	MailSender            string         `json:"mail_sender"`
	MailAdminTo           string         `json:"mail_admin_to"`
	AWSRegion             string         `json:"aws_region"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Zero values in the
// file leave the corresponding Config field untouched.
func parseJSON(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", jsonConfigFile, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", jsonConfigFile, err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.NutritionAPIURL != "" {
		config.NutritionAPIURL = c.NutritionAPIURL
	}
	if c.NutritionAPIKey != "" {
		config.NutritionAPIKey = c.NutritionAPIKey
	}
	if c.NutritionAPIHost != "" {
		config.NutritionAPIHost = c.NutritionAPIHost
	}
	if c.NutritionTimeout.Duration != 0 {
		config.NutritionTimeout = c.NutritionTimeout.Duration
	}
	if c.MailEnabled {
		config.MailEnabled = true
	}
	if c.MailSender != "" {
		config.MailSender = c.MailSender
	}
	if c.MailAdminTo != "" {
		config.MailAdminTo = c.MailAdminTo
	}
	if c.AWSRegion != "" {
		config.AWSRegion = c.AWSRegion
	}

	return nil
}
