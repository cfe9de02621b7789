// Package config loads matteray settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/matteray/config.toml, falling back
// to ~/.config/matteray/config.toml. A missing file is not an error; every
// setting has a default. Environment variables prefixed with MATTERAY_ override
// the file for the values most often changed per deployment.
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/viktori/matteray/pkg/cache"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as a Go duration string ("30s", "24h").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the full configuration file.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	TTL     Duration    `toml:"ttl"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

type PipelineConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration(24 * time.Hour),
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "matteray",
				Collection: "cache",
			},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(15 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
			MaxBodyBytes: 8 << 20,
		},
		Pipeline: PipelineConfig{Concurrency: 4},
	}
}

// DefaultPath returns the path of the user's config file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "matteray", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "matteray", "config.toml"), nil
}

// Load reads path on top of Default, applies environment overrides and
// validates the result. An empty path means DefaultPath. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
		}
	}

	cfg.applyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// applyEnv overrides selected settings from the environment.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("MATTERAY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("MATTERAY_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("MATTERAY_REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := getenv("MATTERAY_MONGO_URI"); v != "" {
		c.Cache.Mongo.URI = v
	}
	if v := getenv("MATTERAY_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv("MATTERAY_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pipeline.Concurrency = n
		}
	}
}

// Validate checks values that cannot be caught by decoding alone.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo:
	default:
		return fmt.Errorf("%w: cache.backend %q (want none, file, redis or mongo)", ErrInvalid, c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("%w: cache.redis.addr is required", ErrInvalid)
	}
	if c.Cache.Backend == cache.BackendMongo && c.Cache.Mongo.URI == "" {
		return fmt.Errorf("%w: cache.mongo.uri is required", ErrInvalid)
	}
	if c.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("%w: pipeline.concurrency must be positive", ErrInvalid)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalid)
	}
	return nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheOptions converts the cache section into cache.Options.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		TTL:     time.Duration(c.Cache.TTL),
		Redis: cache.RedisOptions{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}
