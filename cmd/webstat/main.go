package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/webstat/internal/report"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: webstat [flags] <mode> [file]

Analyze a web-server access log and print a ranked report.

Modes:
  attempts   connection attempts by IP
  success    successful (1xx-3xx) attempts by IP
  status     status code by IP (distinct pairs)
  failure    failure (4xx-5xx) status code by IP
  bytes      bytes transferred by IP

Reads from file when given, otherwise from stdin.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var (
		configPath  string
		limit       int
		blacklist   string
		serve       bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/webstat/config.yml)")
	flag.IntVar(&limit, "n", defaultLimit, "max result rows, -1 for unbounded")
	flag.StringVar(&blacklist, "b", "", "blacklist file of domain entries (none by default)")
	flag.BoolVar(&serve, "serve", false, "serve reports over the HTTP API instead of printing")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("webstat - Access Log Analyzer\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "webstat: missing mode argument")
		usage()
		os.Exit(2)
	}
	if len(args) > 2 {
		fmt.Fprintf(os.Stderr, "webstat: too many arguments: %s\n", strings.Join(args[2:], " "))
		usage()
		os.Exit(2)
	}

	mode, err := report.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "webstat: %v\n", err)
		usage()
		os.Exit(2)
	}

	var path string
	if len(args) == 2 {
		path = args[1]
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags override config file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Limit = limit
		case "b":
			cfg.Blacklist = blacklist
		case "serve":
			cfg.Serve = serve
		}
	})

	if cfg.Limit < -1 {
		fmt.Fprintf(os.Stderr, "webstat: invalid limit %d (want -1 or a non-negative count)\n", cfg.Limit)
		usage()
		os.Exit(2)
	}

	if err := run(cfg, mode, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultCachePath := filepath.Join(home, ".local", "share", "webstat", "cache.duckdb")

	v := viper.New()
	v.SetEnvPrefix("WEBSTAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("limit", defaultLimit)
	v.SetDefault("blacklist", "")
	v.SetDefault("cache-path", defaultCachePath)
	v.SetDefault("dns-timeout", defaultDNSTimeout)
	v.SetDefault("dns-server", "")
	v.SetDefault("resolve-workers", defaultResolveWorkers)
	v.SetDefault("max-line-size", defaultMaxLineSize)
	v.SetDefault("serve", false)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("save-timeout", defaultSaveTimeout)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "webstat", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}

	// Expand ~ in paths that may come from the config file.
	if strings.HasPrefix(cfg.CachePath, "~/") {
		cfg.CachePath = filepath.Join(home, cfg.CachePath[2:])
	}
	if strings.HasPrefix(cfg.Blacklist, "~/") {
		cfg.Blacklist = filepath.Join(home, cfg.Blacklist[2:])
	}

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}
