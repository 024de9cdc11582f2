package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Models     ModelsConfig     `yaml:"models"`
	Push       PushConfig       `yaml:"push"`
	Uploads    UploadsConfig    `yaml:"uploads"`
	Recorder   RecorderConfig   `yaml:"recorder"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds JWT signing and password hashing parameters.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTLHours int           `yaml:"token_ttl_hours"`
	TokenTTL      time.Duration `yaml:"-"` // Ignored by YAML parser
	BcryptCost    int           `yaml:"bcrypt_cost"`
	Issuer        string        `yaml:"issuer"`
}

// ModelsConfig holds the location of the pre-trained model artifacts.
type ModelsConfig struct {
	Dir                string  `yaml:"dir"`
	SentimentFile      string  `yaml:"sentiment_file"`
	OccupancyFile      string  `yaml:"occupancy_file"`
	ComplaintFile      string  `yaml:"complaint_file"`
	AutoApprove        bool    `yaml:"auto_approve_bookings"`
	AutoApproveMaxRate float64 `yaml:"auto_approve_max_rate"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// UploadsConfig holds local disk storage settings for student documents and photos.
type UploadsConfig struct {
	Dir          string `yaml:"dir"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

// RecorderConfig holds the configuration for the occupancy recorder loop.
type RecorderConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 72
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = 12
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "hostel-backend"
	}

	if cfg.Models.Dir == "" {
		cfg.Models.Dir = "./models"
	}
	if cfg.Models.SentimentFile == "" {
		cfg.Models.SentimentFile = "sentiment_model.json"
	}
	if cfg.Models.OccupancyFile == "" {
		cfg.Models.OccupancyFile = "occupancy_model.json"
	}
	if cfg.Models.ComplaintFile == "" {
		cfg.Models.ComplaintFile = "complaint_classifier.json"
	}
	if cfg.Models.AutoApproveMaxRate <= 0 {
		cfg.Models.AutoApproveMaxRate = 90
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "./uploads"
	}
	if cfg.Uploads.MaxSizeBytes <= 0 {
		cfg.Uploads.MaxSizeBytes = 16 << 20
	}

	if cfg.Recorder.IntervalSeconds <= 0 {
		cfg.Recorder.IntervalSeconds = 3600
	}
	cfg.Recorder.Interval = time.Duration(cfg.Recorder.IntervalSeconds) * time.Second

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment (or a .env file
// loaded by the caller) instead of being committed in config.yaml.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("VAPID_PUBLIC_KEY"); v != "" {
		cfg.Push.PublicKey = v
	}
	if v := os.Getenv("VAPID_PRIVATE_KEY"); v != "" {
		cfg.Push.PrivateKey = v
	}
}
