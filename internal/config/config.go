package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Registry RegistryConfig `yaml:"registry"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Push     PushConfig     `yaml:"push"`
	NER      NERConfig      `yaml:"ner"`
	Polling  PollingConfig  `yaml:"polling"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// RegistryConfig holds credentials and limits for the national missing-person
// registry API. The upstream enforces an informal daily quota, so the minimum
// interval and cache TTL gate every outbound call.
type RegistryConfig struct {
	URL         string        `yaml:"url"`
	EssentialID string        `yaml:"essential_id"`
	AuthKey     string        `yaml:"auth_key"`
	PageSize    int           `yaml:"page_size"`
	MinInterval time.Duration `yaml:"min_interval"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

type GeocodeConfig struct {
	URL     string `yaml:"url"`
	RESTKey string `yaml:"rest_key"`
}

type PushConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

type NERConfig struct {
	ModelsDir string `yaml:"models_dir"`
	MaxSeqLen int    `yaml:"max_seq_len"`
}

type PollingConfig struct {
	CycleInterval  time.Duration `yaml:"cycle_interval"`
	FailureBackoff time.Duration `yaml:"failure_backoff"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Registry.URL == "" {
		cfg.Registry.URL = "https://www.safe182.go.kr/api/lcm/amberList.do"
	}
	if cfg.Registry.PageSize == 0 {
		cfg.Registry.PageSize = 50
	}
	if cfg.Registry.MinInterval == 0 {
		cfg.Registry.MinInterval = 300 * time.Second
	}
	if cfg.Registry.CacheTTL == 0 {
		cfg.Registry.CacheTTL = 3600 * time.Second
	}
	if cfg.Geocode.URL == "" {
		cfg.Geocode.URL = "https://dapi.kakao.com/v2/local/search/address.json"
	}
	if cfg.NER.MaxSeqLen == 0 {
		cfg.NER.MaxSeqLen = 128
	}
	if cfg.Polling.CycleInterval == 0 {
		cfg.Polling.CycleInterval = 300 * time.Second
	}
	if cfg.Polling.FailureBackoff == 0 {
		cfg.Polling.FailureBackoff = 600 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AMBER_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("AMBER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("AMBER_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("AMBER_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("AMBER_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("AMBER_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("AMBER_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("AMBER_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("AMBER_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("AMBER_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("AMBER_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("AMBER_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("AMBER_REGISTRY_ESSENTIAL_ID"); v != "" {
		cfg.Registry.EssentialID = v
	}
	if v := os.Getenv("AMBER_REGISTRY_AUTH_KEY"); v != "" {
		cfg.Registry.AuthKey = v
	}
	if v := os.Getenv("AMBER_KAKAO_REST_KEY"); v != "" {
		cfg.Geocode.RESTKey = v
	}
	if v := os.Getenv("AMBER_FIREBASE_CREDENTIALS"); v != "" {
		cfg.Push.CredentialsFile = v
	}
	if v := os.Getenv("AMBER_MODELS_DIR"); v != "" {
		cfg.NER.ModelsDir = v
	}
}
