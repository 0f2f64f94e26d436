package xqueue

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/xqueue/internal/envexpr"
	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend/redis"
	"github.com/viant/xqueue/service/server"
)

const (
	// DefaultQueueName is the namespace used when none is configured.
	DefaultQueueName = "SCRAPY_X_QUEUE"
	// DefaultQueueSuffix is the queue consumed when no workers are configured.
	DefaultQueueSuffix = "default"
)

// Config is a serialisable representation of the consumer configuration. It
// is populated from YAML and then overlaid with X_* environment variables.
type Config struct {
	Queue   QueueConfig   `json:"queue" yaml:"queue"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
	Server  server.Config `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Debug   bool          `json:"debug" yaml:"debug" env:"X_DEBUG"`
}

// QueueConfig defines the key namespace and the worker count per queue suffix.
type QueueConfig struct {
	Name string `json:"name" yaml:"name" env:"X_QUEUE_NAME"`
	// Workers is set from X_QUEUE_WORKERS_COUNT as suffix:count pairs, e.g. default:4,priority:1
	Workers map[string]int `json:"workers" yaml:"workers" env:"X_QUEUE_WORKERS_COUNT"`
}

// RedisConfig defines the backend connection.
type RedisConfig struct {
	Host           string `json:"host" yaml:"host" env:"X_REDIS_HOST"`
	Port           int    `json:"port" yaml:"port" env:"X_REDIS_PORT"`
	DB             int    `json:"db" yaml:"db" env:"X_REDIS_DB"`
	Password       string `json:"-" yaml:"password" env:"X_REDIS_PASSWORD"`
	Secret         string `json:"secret,omitempty" yaml:"secret" env:"X_REDIS_PASSWORD_SECRET"`
	SecretKey      string `json:"secretKey,omitempty" yaml:"secretKey" env:"X_REDIS_PASSWORD_SECRET_KEY"`
	DialTimeoutSec int    `json:"dialTimeoutSec,omitempty" yaml:"dialTimeoutSec"`
}

// Addr returns host:port.
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c *RedisConfig) backend() *redis.Config {
	return &redis.Config{
		Addr:        c.Addr(),
		DB:          c.DB,
		Password:    c.Password,
		Secret:      c.Secret,
		SecretKey:   c.SecretKey,
		DialTimeout: time.Duration(c.DialTimeoutSec) * time.Second,
	}
}

// LogConfig defines the logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"X_LOG_LEVEL"`
	Format string `json:"format" yaml:"format" env:"X_LOG_FORMAT"`
}

// TracingConfig defines OpenTelemetry tracing; an empty OutputFile uses stdout.
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	OutputFile  string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() *Config {
	ret := &Config{
		Server: server.Config{Host: "0.0.0.0", Port: 6800, AccessLog: true},
	}
	ret.Init()
	return ret
}

// Init fills in zero values.
func (c *Config) Init() {
	if c.Queue.Name == "" {
		c.Queue.Name = DefaultQueueName
	}
	if len(c.Queue.Workers) == 0 {
		c.Queue.Workers = map[string]int{DefaultQueueSuffix: runtime.NumCPU()}
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
		if c.Debug {
			c.Log.Level = "debug"
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "xqueue"
	}
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	if strings.TrimSpace(c.Queue.Name) == "" {
		return fmt.Errorf("queue.name was empty")
	}
	if _, err := model.NewPlan(c.Queue.Workers); err != nil {
		return fmt.Errorf("queue.workers: %w", err)
	}
	if c.Redis.Port <= 0 {
		return fmt.Errorf("redis.port must be > 0")
	}
	if c.Server.Port < 0 {
		return fmt.Errorf("server.port must be >= 0")
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	ret := *c
	ret.Queue.Workers = make(map[string]int, len(c.Queue.Workers))
	for suffix, count := range c.Queue.Workers {
		ret.Queue.Workers[suffix] = count
	}
	return &ret
}

// LoadConfig builds a config from defaults, the optional YAML document at URL
// (any afs supported scheme, ${env.KEY} expressions expanded) and finally the
// X_* environment variables.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := &Config{
		Server: server.Config{Host: "0.0.0.0", Port: 6800, AccessLog: true},
	}
	if URL != "" {
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
		}
		if err = yaml.Unmarshal([]byte(envexpr.Expand(string(data))), ret); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
		}
	}
	if err := env.Parse(ret); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	ret.Init()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
