// Package config loads the tokens CLI configuration with viper.
//
// Values come from, highest priority first: command-line flags bound with
// [BindFlags], TOKENS_* environment variables (dots become underscores, so
// cache.redis.addr is TOKENS_CACHE_REDIS_ADDR), and a config file. The
// file is the --config flag, else TOKENS_CONFIG_FILE, else the first
// .tokens.{toml,yaml,yml,json} in the working directory. A missing default
// file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	tokerrors "github.com/darianrosebrook/portfolio-sub007/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOKENS"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

var backends = []string{BackendFile, BackendMemory, BackendRedis, BackendNone}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Store    StoreConfig    `mapstructure:"store"`
	Server   ServerConfig   `mapstructure:"server"`
	Project  ProjectConfig  `mapstructure:"project"`
	Validate ValidateConfig `mapstructure:"validate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type StoreConfig struct {
	Mongo MongoConfig `mapstructure:"mongo"`
}

type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type ProjectConfig struct {
	Namespace string `mapstructure:"namespace"`
	Root      string `mapstructure:"root"`
}

type ValidateConfig struct {
	StrictUnits bool `mapstructure:"strict_units"`
	Jobs        int  `mapstructure:"jobs"`
}

// Keys lists every configuration key. Each is bound to its environment
// variable so env-only values survive Unmarshal.
var Keys = []string{
	"log.level",
	"cache.backend",
	"cache.dir",
	"cache.ttl",
	"cache.redis.addr",
	"cache.redis.password",
	"cache.redis.db",
	"cache.redis.prefix",
	"store.mongo.uri",
	"store.mongo.database",
	"store.mongo.collection",
	"store.mongo.timeout",
	"server.addr",
	"project.namespace",
	"project.root",
	"validate.strict_units",
	"validate.jobs",
}

var defaultFiles = []string{".tokens.toml", ".tokens.yaml", ".tokens.yml", ".tokens.json"}

// New returns a viper instance reading configFile, or the default file
// search when configFile is empty.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range Keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	explicit := true
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	if configFile == "" {
		explicit = false
		for _, name := range defaultFiles {
			if _, err := os.Stat(name); err == nil {
				configFile = name
				break
			}
		}
	}
	if configFile == "" {
		return v, nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config %s: %w", configFile, err)
	}
	return v, nil
}

// BindFlags binds configuration keys to flags. Flags that are not in fs
// are skipped, so commands can bind the shared map regardless of which
// flags they define.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, flags map[string]string) error {
	for key, name := range flags {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals v, applies defaults and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = BackendFile
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
	}
	if cfg.Cache.Redis.Prefix == "" {
		cfg.Cache.Redis.Prefix = "tokens:"
	}
	if cfg.Store.Mongo.URI == "" {
		cfg.Store.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Store.Mongo.Database == "" {
		cfg.Store.Mongo.Database = "cms"
	}
	if cfg.Store.Mongo.Collection == "" {
		cfg.Store.Mongo.Collection = "design_tokens"
	}
	if cfg.Store.Mongo.Timeout == 0 {
		cfg.Store.Mongo.Timeout = 10 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}

// Check rejects values that defaults cannot fix.
func (c *Config) Check() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend: %q is not one of %s", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Redis.DB < 0 {
		return errors.New("cache.redis.db cannot be negative")
	}
	if c.Validate.Jobs < 0 {
		return errors.New("validate.jobs cannot be negative")
	}
	if c.Project.Namespace != "" {
		if err := tokerrors.ValidateNamespace(c.Project.Namespace); err != nil {
			return fmt.Errorf("project.namespace: %w", err)
		}
	}
	if c.Project.Root != "" {
		if err := tokerrors.ValidateTokenPath(c.Project.Root); err != nil {
			return fmt.Errorf("project.root: %w", err)
		}
	}
	return nil
}
