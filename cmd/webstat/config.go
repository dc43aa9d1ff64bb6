package main

import (
	"time"

	"github.com/tinytelemetry/webstat/internal/logsource"
	"github.com/tinytelemetry/webstat/internal/model"
)

const (
	defaultLimit          = model.DefaultLimit
	defaultDNSTimeout     = model.DefaultDNSTimeout
	defaultResolveWorkers = model.DefaultResolveWorkers
	defaultSaveTimeout    = model.DefaultSaveTimeout
	defaultMaxLineSize    = logsource.DefaultMaxLineSize
	defaultBindHost       = "127.0.0.1"
	defaultAPIPort        = 3000
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Limit          int           `mapstructure:"limit"`
	Blacklist      string        `mapstructure:"blacklist"`
	CachePath      string        `mapstructure:"cache-path"`
	DNSTimeout     time.Duration `mapstructure:"dns-timeout"`
	DNSServer      string        `mapstructure:"dns-server"`
	ResolveWorkers int           `mapstructure:"resolve-workers"`
	MaxLineSize    int           `mapstructure:"max-line-size"`
	Serve          bool          `mapstructure:"serve"`
	APIPort        int           `mapstructure:"api-port"`
	APIAddr        string        `mapstructure:"api-addr"`
	SaveTimeout    time.Duration `mapstructure:"save-timeout"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}
