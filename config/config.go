package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or a SQLite file path
	}
	LLM struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"llm"`
	ImageAPI struct {
		APIKey   string `mapstructure:"api_key"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"image_api"`
	Storage struct {
		CloudName string `mapstructure:"cloud_name"`
		APIKey    string `mapstructure:"api_key"`
		APISecret string `mapstructure:"api_secret"`
	} `mapstructure:"storage"`
	Identity struct {
		JWTSecret string `mapstructure:"jwt_secret"`
		APIBase   string `mapstructure:"api_base"`
		APIKey    string `mapstructure:"api_key"`
	} `mapstructure:"identity"`
	Uploads struct {
		Dir          string `mapstructure:"dir"`
		MaxImageSize int64  `mapstructure:"max_image_size"`
		MaxPDFSize   int64  `mapstructure:"max_pdf_size"`
	} `mapstructure:"uploads"`
	FreeUsageQuota int `mapstructure:"free_usage_quota"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from .env, config.yaml and environment
// variables. Secrets always come from the environment when set there.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: [Config] No .env file found, relying on process environment.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("database.dsn", "data/quickai.db")
	viper.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
	viper.SetDefault("llm.model", "gemini-2.0-flash")
	viper.SetDefault("image_api.endpoint", "https://clipdrop-api.co/text-to-image/v1")
	viper.SetDefault("identity.api_base", "https://api.clerk.com")
	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("uploads.max_image_size", 10*1024*1024)
	viper.SetDefault("uploads.max_pdf_size", 5*1024*1024)
	viper.SetDefault("free_usage_quota", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration: %v", err)
	}

	// Environment variable overrides. Keys never live in config.yaml.
	overrides := []struct {
		env    string
		target *string
	}{
		{"SERVER_PORT", &AppConfig.Server.Port},
		{"DATABASE_DSN", &AppConfig.Database.DSN},
		{"GEMINI_API_KEY", &AppConfig.LLM.APIKey},
		{"LLM_BASE_URL", &AppConfig.LLM.BaseURL},
		{"CLIPDROP_API_KEY", &AppConfig.ImageAPI.APIKey},
		{"CLOUDINARY_CLOUD_NAME", &AppConfig.Storage.CloudName},
		{"CLOUDINARY_API_KEY", &AppConfig.Storage.APIKey},
		{"CLOUDINARY_API_SECRET", &AppConfig.Storage.APISecret},
		{"IDENTITY_JWT_SECRET", &AppConfig.Identity.JWTSecret},
		{"IDENTITY_API_BASE", &AppConfig.Identity.APIBase},
		{"IDENTITY_API_KEY", &AppConfig.Identity.APIKey},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}

	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] GEMINI_API_KEY is not set. Text generation will fail until it is configured.")
	}
	if AppConfig.ImageAPI.APIKey == "" {
		log.Println("WARN: [Config] CLIPDROP_API_KEY is not set. Image generation will fail until it is configured.")
	}
	if AppConfig.Storage.CloudName == "" {
		log.Println("WARN: [Config] Storage cloud name is not set. Image hosting features will not work.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
