package config

import (
	"time"
)

// Config is the complete server configuration
type Config struct {
	Server    ServerConfig  `yaml:"server"`
	Dataset   DatasetConfig `yaml:"dataset"`
	Data      DataConfig    `yaml:"data"`
	SPARQL    SPARQLConfig  `yaml:"sparql"`
	Log       LogConfig     `yaml:"log"`
	LocalURIs bool          `yaml:"local_uris" env:"LOCAL_URIS"` // link to /object?uri= instead of the canonical URIs
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr            string   `yaml:"addr" env:"TB16PIX_ADDR"`
	ReadTimeout     Duration `yaml:"read_timeout" env:"TB16PIX_READ_TIMEOUT"`
	WriteTimeout    Duration `yaml:"write_timeout" env:"TB16PIX_WRITE_TIMEOUT"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"TB16PIX_SHUTDOWN_TIMEOUT"`
}

// DatasetConfig sets the URI base every resource URI is minted from
type DatasetConfig struct {
	URI string `yaml:"uri" env:"DATASET_URI"`
}

// DataConfig locates the data files and the on-disk triple cache
type DataConfig struct {
	Dir        string `yaml:"dir" env:"DATA_DIR"`
	CacheFile  string `yaml:"cache_file" env:"CACHE_FILE"`
	CacheHours int    `yaml:"cache_hours" env:"CACHE_HOURS"`
	Watch      bool   `yaml:"watch" env:"DATA_WATCH"`
}

// SPARQLConfig configures the upstream triple store
type SPARQLConfig struct {
	Endpoint  string   `yaml:"endpoint" env:"SPARQL_ENDPOINT"`
	Username  string   `yaml:"username" env:"SPARQL_USERNAME"`
	Password  string   `yaml:"password,omitempty" env:"SPARQL_PASSWORD"`
	Timeout   Duration `yaml:"timeout" env:"SPARQL_TIMEOUT"`
	RateLimit float64  `yaml:"rate_limit" env:"SPARQL_RATE_LIMIT"` // queries per second, 0 disables
	Burst     int      `yaml:"burst" env:"SPARQL_BURST"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"LOG_FORMAT"` // text or json
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.Decode(s)
}

// Decode parses a duration from an environment variable
func (d *Duration) Decode(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
