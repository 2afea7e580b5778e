package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Clip     ClipConfig     `mapstructure:"clip"`
	Detector DetectorConfig `mapstructure:"detector"`
	VLM      VLMConfig      `mapstructure:"vlm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Database DatabaseConfig `mapstructure:"database"`
	Qdrant   QdrantConfig   `mapstructure:"qdrant"`
	Assets   AssetsConfig   `mapstructure:"assets"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// ClipConfig describes the embedding sidecar that serves the text and
// vision encoders.
type ClipConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	Quantized bool   `mapstructure:"quantized"`
}

// DetectorConfig describes the zero-shot object-detection sidecar.
type DetectorConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	Model     string  `mapstructure:"model"`
	Preset    string  `mapstructure:"preset"`
	Threshold float64 `mapstructure:"threshold"`
}

type VLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// PipelineConfig carries the analysis knobs shared by the API server and
// the CLI.
type PipelineConfig struct {
	TopK        int    `mapstructure:"top_k"`
	GridSize    int    `mapstructure:"grid_size"`
	AdapterPath string `mapstructure:"adapter_path"`
	Hybrid      bool   `mapstructure:"hybrid"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type QdrantConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	APIKey     string `mapstructure:"api_key"`
	UseTLS     bool   `mapstructure:"use_tls"`
	Collection string `mapstructure:"collection"`
}

// AssetsConfig locates deck reference art, either on the local
// filesystem or in an S3-compatible bucket.
type AssetsConfig struct {
	Backend   string `mapstructure:"backend"`
	LocalDir  string `mapstructure:"local_dir"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("clip.base_url", "http://localhost:8081")
	v.SetDefault("clip.model", "clip-vit-base-patch16")
	v.SetDefault("clip.quantized", false)
	v.SetDefault("detector.base_url", "http://localhost:8082")
	v.SetDefault("detector.model", "owlv2-base-patch16")
	v.SetDefault("detector.preset", "accurate")
	v.SetDefault("detector.threshold", 0.05)
	v.SetDefault("vlm.provider", "openai")
	v.SetDefault("vlm.model", "llama-3.2-11b-vision")
	v.SetDefault("vlm.base_url", "https://api.openai.com/v1")
	v.SetDefault("pipeline.top_k", 5)
	v.SetDefault("pipeline.grid_size", 14)
	v.SetDefault("pipeline.adapter_path", "./data/adapters.json")
	v.SetDefault("pipeline.hybrid", true)
	v.SetDefault("database.path", "./data/embeddings.db")
	v.SetDefault("qdrant.enabled", false)
	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.collection", "card_library")
	v.SetDefault("assets.backend", "local")
	v.SetDefault("assets.local_dir", "./data/decks")
	v.SetDefault("assets.bucket", "tarot-decks")
	v.SetDefault("assets.region", "auto")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("clip.base_url", "CLIP_BASE_URL")
	v.BindEnv("clip.api_key", "CLIP_API_KEY")
	v.BindEnv("detector.base_url", "DETECTOR_BASE_URL")
	v.BindEnv("detector.threshold", "DETECTOR_THRESHOLD")
	v.BindEnv("detector.preset", "DETECTOR_PRESET")
	v.BindEnv("vlm.api_key", "OPENAI_API_KEY")
	v.BindEnv("vlm.base_url", "OPENAI_BASE_URL")
	v.BindEnv("vlm.model", "VLM_MODEL")
	v.BindEnv("pipeline.adapter_path", "ADAPTER_PATH")
	v.BindEnv("qdrant.host", "QDRANT_HOST")
	v.BindEnv("qdrant.port", "QDRANT_PORT")
	v.BindEnv("qdrant.api_key", "QDRANT_API_KEY")
	v.BindEnv("assets.endpoint", "ASSETS_ENDPOINT")
	v.BindEnv("assets.access_key", "ASSETS_ACCESS_KEY")
	v.BindEnv("assets.secret_key", "ASSETS_SECRET_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
