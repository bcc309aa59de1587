package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	WhatsApp WhatsAppConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration. Timeouts are in seconds;
// the write timeout must outlast the 30s outbound WhatsApp call that happens
// inside a send request.
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	ReadTimeout  int
	WriteTimeout int
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// WhatsAppConfig holds WhatsApp Cloud API configuration
type WhatsAppConfig struct {
	APIURL string
	Brands map[string]BrandConfig
}

// BrandConfig holds per-brand WhatsApp Business credentials
type BrandConfig struct {
	PhoneNumberID string
	AccessToken   string
	BusinessPhone string
	DisplayName   string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Brand credentials always come straight from the environment, never from
	// a config file.
	config.WhatsApp.Brands = map[string]BrandConfig{
		"suitorguy": {
			PhoneNumberID: GetEnv("SUITORGUY_PHONE_NUMBER_ID", ""),
			AccessToken:   GetEnv("SUITORGUY_ACCESS_TOKEN", ""),
			BusinessPhone: GetEnv("SUITORGUY_BUSINESS_PHONE", ""),
			DisplayName:   "SuitorGuy",
		},
		"zorucci": {
			PhoneNumberID: GetEnv("ZORUCCI_PHONE_NUMBER_ID", ""),
			AccessToken:   GetEnv("ZORUCCI_ACCESS_TOKEN", ""),
			BusinessPhone: GetEnv("ZORUCCI_BUSINESS_PHONE", ""),
			DisplayName:   "Zorucci",
		},
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", GetEnv("PORT", "5000"))
	viper.SetDefault("Server.AllowedHosts", GetEnvAsSlice("ALLOWED_HOSTS", ",", []string{"*"}))
	viper.SetDefault("Server.ReadTimeout", GetEnvAsInt("SERVER_READ_TIMEOUT", 15))
	viper.SetDefault("Server.WriteTimeout", GetEnvAsInt("SERVER_WRITE_TIMEOUT", 60))
	viper.SetDefault("MongoDB.URI", GetEnv("MONGODB_URI", "mongodb://localhost:27017"))
	viper.SetDefault("MongoDB.Database", GetEnv("MONGODB_DATABASE", "whatsapp-notifications"))
	viper.SetDefault("WhatsApp.APIURL", GetEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v18.0"))
	viper.SetDefault("LogLevel", GetEnv("LOG_LEVEL", "info"))
}
