package utils

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool gets a boolean environment variable with a default value
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// LoadConfigMap reads a YAML file into a generic config map.
// Returns nil if the file cannot be read or parsed.
func LoadConfigMap(configPath string) map[string]interface{} {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil
	}

	config := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil
	}

	return config
}

// GetStringValue safely gets a string value from config map with default
func GetStringValue(config map[string]interface{}, key, defaultValue string) string {
	if val, ok := config[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetBoolValue safely gets a bool value from config map with default
func GetBoolValue(config map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := config[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}
