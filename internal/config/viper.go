// Package config exposes the viper-backed settings shared by the CLI and server.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// APIKeyEnv lists the environment variables that may carry the catalog
// API key, in lookup order.
var APIKeyEnv = []string{
	"CARDMAP_API_KEY",
	"POKEMONTCG_API_KEY",
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// BindAPIKeys binds the "api_key" setting to every environment alias so a key
// loaded from a .env file is visible through viper.
func BindAPIKeys() error {
	return viper.BindEnv(append([]string{"api_key"}, APIKeyEnv...)...)
}

// APIKey resolves the catalog credential. The "api_key" setting wins, then
// each environment alias. An empty result means no header is sent.
func APIKey() string {
	if key := strings.TrimSpace(viper.GetString("api_key")); key != "" {
		return key
	}
	for _, env := range APIKeyEnv {
		if key := strings.TrimSpace(GetString(env)); key != "" {
			return key
		}
	}
	return ""
}

// HasAPIKey reports whether any credential is configured.
func HasAPIKey() bool {
	return APIKey() != ""
}
