package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Logging   LoggingConfig   `yaml:"logging"`
	Watcher   WatcherConfig   `yaml:"watcher"`
	Network   NetworkConfig   `yaml:"network"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Stores    StoresConfig    `yaml:"stores"`
	PubSub    PubSubConfig    `yaml:"pubsub"`
	API       APIConfig       `yaml:"api"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AppConfig struct {
	InstanceID      string        `yaml:"instance_id"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type FeedConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Policy knobs of the poll cycle. The defaults are what the dashboard was
// tuned for; all of them are policy, none are algorithmic necessities.
type WatcherConfig struct {
	Interval        time.Duration `yaml:"interval"`
	ChainID         string        `yaml:"chain_id"`
	Keywords        []string      `yaml:"keywords"`
	MaxPerCycle     int           `yaml:"max_per_cycle"`
	MinLiquidityUSD float64       `yaml:"min_liquidity_usd"`
	MaxPairAge      time.Duration `yaml:"max_pair_age"`
	DedupeCapacity  int           `yaml:"dedupe_capacity"`
	StoreCapacity   int           `yaml:"store_capacity"`
	LogCapacity     int           `yaml:"log_capacity"`
	HistoryCapacity int           `yaml:"history_capacity"`
	Feed            FeedConfig    `yaml:"feed"`
}

type NetworkConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type RateLimitConfig struct {
	Enabled bool `yaml:"enabled"`
	ByIP    struct {
		RefillPerSec int `yaml:"refill_per_sec"`
		Burst        int `yaml:"burst"`
	} `yaml:"by_ip"`
}

type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type StoresConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

type NATSConfig struct {
	Enabled         bool   `yaml:"enabled"`
	URL             string `yaml:"url"`
	BroadcastPrefix string `yaml:"broadcast_prefix"`
}

type PubSubConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

type CORSConfig struct {
	Enabled bool     `yaml:"enabled"`
	Origins []string `yaml:"origins"`
	Methods []string `yaml:"methods"`
	Headers []string `yaml:"headers"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	CORS         CORSConfig    `yaml:"cors"`
}

type APIConfig struct {
	HTTP HTTPConfig `yaml:"http"`
}

type PyroscopeConfig struct {
	Enabled    bool              `yaml:"enabled"`
	AppName    string            `yaml:"app_name"`
	ServerAddr string            `yaml:"server_addr"`
	AuthToken  string            `yaml:"auth_token"`
	Tags       map[string]string `yaml:"tags"`
}

type MetricsConfig struct {
	Pyroscope PyroscopeConfig `yaml:"pyroscope"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every unset policy knob with the tuned defaults.
func (c *Config) ApplyDefaults() {
	if c.App.ShutdownTimeout <= 0 {
		c.App.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	w := &c.Watcher
	if w.Interval <= 0 {
		w.Interval = 10 * time.Second
	}
	if w.ChainID == "" {
		w.ChainID = "solana"
	}
	if len(w.Keywords) == 0 {
		w.Keywords = []string{"pump", "moon", "sol", "doge", "pepe", "inu", "cat", "meme"}
	}
	if w.MaxPerCycle <= 0 {
		w.MaxPerCycle = 5
	}
	if w.MinLiquidityUSD <= 0 {
		w.MinLiquidityUSD = 500
	}
	if w.MaxPairAge <= 0 {
		w.MaxPairAge = 24 * time.Hour
	}
	if w.DedupeCapacity <= 0 {
		w.DedupeCapacity = 2_000
	}
	if w.StoreCapacity <= 0 {
		w.StoreCapacity = 50
	}
	if w.LogCapacity <= 0 {
		w.LogCapacity = 500
	}
	if w.HistoryCapacity <= 0 {
		w.HistoryCapacity = 100
	}
	if w.Feed.Timeout <= 0 {
		w.Feed.Timeout = 15 * time.Second
	}

	if c.Network.Interval <= 0 {
		c.Network.Interval = 30 * time.Second
	}

	if c.API.HTTP.Addr == "" {
		c.API.HTTP.Addr = ":8080"
	}
	if c.API.HTTP.ReadTimeout <= 0 {
		c.API.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.API.HTTP.WriteTimeout <= 0 {
		c.API.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.API.HTTP.IdleTimeout <= 0 {
		c.API.HTTP.IdleTimeout = 60 * time.Second
	}
}
