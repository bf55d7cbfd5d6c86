package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMongo = "mongo"
	StoreBolt  = "bolt"

	CacheRedis  = "redis"
	CacheMemory = "memory"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	Store  Store  `yaml:"store"  json:"store"`
	Cache  Cache  `yaml:"cache"  json:"cache"`
}

type Server struct {
	Host               string `yaml:"host"                 json:"host"                 env:"HOST"                    env-default:""`
	Port               string `yaml:"port"                 json:"port"                 env:"PORT"                    env-default:"3000"`
	RoutePrefix        string `yaml:"route_prefix"         json:"route_prefix"         env:"ROUTE_PREFIX"            env-default:""`
	CORSOrigins        string `yaml:"cors_origins"         json:"cors_origins"         env:"CORS_ORIGINS"            env-default:"*"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec"     json:"read_timeout_sec"     env:"SERVER_READ_TIMEOUT"     env-default:"15"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec"    json:"write_timeout_sec"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15"`
	IdleTimeoutSec     int    `yaml:"idle_timeout_sec"     json:"idle_timeout_sec"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15"`
}

type Store struct {
	Driver         string `yaml:"driver"          json:"driver"          env:"STORE_DRIVER"          env-default:"mongo"`
	URI            string `yaml:"uri"             json:"uri"             env:"MONGODB_URI"`
	Database       string `yaml:"database"        json:"database"        env:"MONGODB_DATABASE"`
	Collection     string `yaml:"collection"      json:"collection"      env:"MONGODB_COLLECTION"    env-default:"items"`
	Path           string `yaml:"path"            json:"path"            env:"STORE_PATH"            env-default:"data/items.db"`
	ConnectTimeout string `yaml:"connect_timeout" json:"connect_timeout" env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
}

type Cache struct {
	Driver         string `yaml:"driver"          json:"driver"          env:"CACHE_DRIVER"          env-default:"redis"`
	URL            string `yaml:"url"             json:"url"             env:"REDIS_URL"`
	Host           string `yaml:"host"            json:"host"            env:"CACHE_HOST"            env-default:"localhost"`
	Port           int    `yaml:"port"            json:"port"            env:"CACHE_PORT"            env-default:"6379"`
	Db             int    `yaml:"db"              json:"db"              env:"CACHE_DB"              env-default:"0"`
	Pass           string `yaml:"password"        json:"password"        env:"CACHE_PASSWORD"        env-default:""`
	Prefix         string `yaml:"prefix"          json:"prefix"          env:"CACHE_PREFIX"          env-default:""`
	Key            string `yaml:"key"             json:"key"             env:"CACHE_KEY"             env-default:"items"`
	TTL            string `yaml:"ttl"             json:"ttl"             env:"CACHE_TTL"             env-default:"60s"`
	ConnectTimeout string `yaml:"connect_timeout" json:"connect_timeout" env:"CACHE_CONNECT_TIMEOUT" env-default:"2s"`
}

// Load reads a YAML file, or inline YAML content, and overlays the
// environment. A path that does not exist is not an error: the config then
// comes from the environment and defaults alone.
func Load(pathOrContent string) (*Config, error) {
	var cfg Config

	switch {
	case isFile(pathOrContent):
		if err := cleanenv.ReadConfig(pathOrContent, &cfg); err != nil {
			return nil, fmt.Errorf("read config %q: %w", pathOrContent, err)
		}
	case looksInline(pathOrContent):
		if err := yaml.Unmarshal([]byte(pathOrContent), &cfg); err != nil {
			return nil, fmt.Errorf("parse config content: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	default:
		if pathOrContent != "" {
			log.Printf("[itemd] config %q not found, using environment only", pathOrContent)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func looksInline(s string) bool {
	return strings.Contains(s, "\n") ||
		strings.Contains(s, "server:") ||
		strings.Contains(s, "store:") ||
		strings.Contains(s, "cache:")
}

func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))

	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.URI == "" {
			return fmt.Errorf("store: driver %q needs uri (MONGODB_URI)", StoreMongo)
		}
	case StoreBolt:
		if c.Store.Path == "" {
			return fmt.Errorf("store: driver %q needs path (STORE_PATH)", StoreBolt)
		}
	default:
		return fmt.Errorf("store: unknown driver %q", c.Store.Driver)
	}

	switch c.Cache.Driver {
	case CacheRedis, CacheMemory:
	default:
		return fmt.Errorf("cache: unknown driver %q", c.Cache.Driver)
	}

	if c.Cache.TTLDuration() <= 0 {
		return fmt.Errorf("cache: invalid ttl %q", c.Cache.TTL)
	}
	return nil
}

// Address is the listen address for Fiber.
func (s Server) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func (s Store) ConnectTimeoutDuration() time.Duration {
	return ParseDuration(s.ConnectTimeout)
}

func (c Cache) TTLDuration() time.Duration {
	return ParseDuration(c.TTL)
}

func (c Cache) ConnectTimeoutDuration() time.Duration {
	return ParseDuration(c.ConnectTimeout)
}

// Addr is host:port, used when no URL is configured.
func (c Cache) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParseDuration accepts Go durations ("90s", "1m") or bare seconds ("60").
// Anything else yields 0.
func ParseDuration(val string) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// Redacted returns a copy safe to log or expose: passwords in connection
// strings and the cache password are masked.
func (c Config) Redacted() Config {
	out := c
	out.Store.URI = redactURL(c.Store.URI)
	out.Cache.URL = redactURL(c.Cache.URL)
	if out.Cache.Pass != "" {
		out.Cache.Pass = "xxxxx"
	}
	return out
}

func redactURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "xxxxx"
	}
	return u.Redacted()
}

// Pretty returns the redacted config as YAML for startup logging.
func (c Config) Pretty() (string, error) {
	b, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}
