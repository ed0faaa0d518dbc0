package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr          string        `yaml:"listen_addr"`
	LogLevel            string        `yaml:"log_level"`
	LogJSON             bool          `yaml:"log_json"`
	StorageBackend      string        `yaml:"storage_backend"` // "kv" or "pg"
	KvPath              string        `yaml:"kv_path"`
	AllowedOrigins      []string      `yaml:"allowed_origins"`
	SecureCookies       bool          `yaml:"secure_cookies"`
	JwtTTL              time.Duration `yaml:"jwt_ttl"`
	SweepInterval       time.Duration `yaml:"sweep_interval"`
	ChatGraceDays       int           `yaml:"chat_grace_days"`
	ChatroomDeleteDelay time.Duration `yaml:"chatroom_delete_delay"`
	ArchiveAfterDays    int           `yaml:"archive_after_days"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	if cfg.Private.JwtKey == "" {
		panic("jwt_key is required")
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.ListenAddr == "" {
		c.Public.ListenAddr = ":8080"
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.StorageBackend == "" {
		c.Public.StorageBackend = "kv"
	}
	if c.Public.KvPath == "" {
		c.Public.KvPath = "campuslink.json"
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 24 * time.Hour
	}
	if c.Public.SweepInterval == 0 {
		c.Public.SweepInterval = time.Hour
	}
	if c.Public.ChatGraceDays == 0 {
		c.Public.ChatGraceDays = 7
	}
	if c.Public.ChatroomDeleteDelay == 0 {
		c.Public.ChatroomDeleteDelay = 24 * time.Hour
	}
	if c.Public.ArchiveAfterDays == 0 {
		c.Public.ArchiveAfterDays = 30
	}
}
