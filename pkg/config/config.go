package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
		// Collect ships aggregated error logs to kafka.logs_topic.
		Collect       bool          `yaml:"collect"`
		FlushInterval time.Duration `yaml:"flush_interval"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Cache struct {
		Driver        string        `yaml:"driver"` // memory, redis, layered
		MemoryMaxSize int           `yaml:"memory_max_size"`
		ScreenerTTL   time.Duration `yaml:"screener_ttl"`
		Redis         struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Queue struct {
		Enabled    bool          `yaml:"enabled"`
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
		KeyPrefix  string        `yaml:"key_prefix"`
	} `yaml:"queue"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		LogsTopic    string   `yaml:"logs_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			Enabled    bool          `yaml:"enabled"`
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Activity struct {
		Backend       string        `yaml:"backend"` // none, kafka, clickhouse
		BufferSize    int           `yaml:"buffer_size"`
		BatchSize     int           `yaml:"batch_size"`
		FlushInterval time.Duration `yaml:"flush_interval"`
		MaxPerSecond  int           `yaml:"max_per_second"`
	} `yaml:"activity"`
	KYC struct {
		SessionTTL    time.Duration `yaml:"session_ttl"`
		PANDelay      time.Duration `yaml:"pan_delay"`
		AadhaarDelay  time.Duration `yaml:"aadhaar_delay"`
		IFSCDelay     time.Duration `yaml:"ifsc_delay"`
		FinalDelay    time.Duration `yaml:"final_delay"`
		IFSCLookupURL string        `yaml:"ifsc_lookup_url"`
		LookupTimeout time.Duration `yaml:"lookup_timeout"`
	} `yaml:"kyc"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
}

// Default returns a configuration that runs with no external infrastructure.
func Default() *Config {
	c := &Config{Environment: "local"}
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 10 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Server.SlowThreshold = 500 * time.Millisecond
	c.Logging.Level = "info"
	c.Logging.Format = "console"
	c.Logging.Output = "stdout"
	c.Logging.FlushInterval = 30 * time.Second
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Cache.Driver = "memory"
	c.Cache.MemoryMaxSize = 1000
	c.Cache.ScreenerTTL = 5 * time.Minute
	c.Cache.Redis.Host = "localhost"
	c.Cache.Redis.Port = 6379
	c.Cache.Redis.PoolSize = 10
	c.Cache.Redis.Prefix = "tickfunds"
	c.Queue.Workers = 2
	c.Queue.RetryLimit = 3
	c.Queue.RetryDelay = 5 * time.Second
	c.Queue.KeyPrefix = "tickfunds:queue"
	c.Kafka.Topic = "tickfunds.activity"
	c.Kafka.LogsTopic = "tickfunds.logs"
	c.Kafka.RequiredAcks = -1
	c.Kafka.Compression = "snappy"
	c.Kafka.Consumer.GroupID = "tickfunds-activity-sink"
	c.Kafka.Consumer.Workers = 2
	c.Kafka.Consumer.BufferSize = 100
	c.ClickHouse.Port = 9000
	c.ClickHouse.Database = "tickfunds"
	c.Activity.Backend = "none"
	c.Activity.BufferSize = 1000
	c.Activity.BatchSize = 50
	c.Activity.FlushInterval = 2 * time.Second
	c.Activity.MaxPerSecond = 200
	c.KYC.SessionTTL = 30 * time.Minute
	c.KYC.PANDelay = 1500 * time.Millisecond
	c.KYC.AadhaarDelay = 2 * time.Second
	c.KYC.IFSCDelay = 1500 * time.Millisecond
	c.KYC.FinalDelay = 3 * time.Second
	c.KYC.LookupTimeout = 3 * time.Second
	c.RateLimit.Capacity = 10
	c.RateLimit.RefillPerSec = 1
	return c
}

// Load reads a YAML file on top of Default() and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
		c.ClickHouse.Enabled = true
	}
	if v := getenv("ACTIVITY_BACKEND"); v != "" {
		c.Activity.Backend = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Cache.Driver {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.driver must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Driver)
	}
	switch c.Activity.Backend {
	case "none":
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers required for activity.backend=kafka")
		}
	case "clickhouse":
		if !c.ClickHouse.Enabled || c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host required for activity.backend=clickhouse")
		}
	default:
		return fmt.Errorf("activity.backend must be 'none', 'kafka' or 'clickhouse', got '%s'", c.Activity.Backend)
	}
	if c.Queue.Enabled && c.Cache.Driver == "memory" {
		return fmt.Errorf("queue.enabled requires a redis cache driver")
	}
	if c.Kafka.Consumer.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.consumer.enabled requires kafka.brokers")
	}
	if c.Logging.Collect && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("logging.collect requires kafka.brokers")
	}
	return nil
}

// RedisEnabled reports whether the configured cache driver needs a Redis connection.
func (c *Config) RedisEnabled() bool {
	return c.Cache.Driver == "redis" || c.Cache.Driver == "layered"
}

// KafkaEnabled reports whether any component needs a Kafka producer.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && (c.Activity.Backend == "kafka" || c.Logging.Collect)
}
