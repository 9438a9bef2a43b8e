// Package config provides functionality for managing configuration options
// for the dashboard using command-line flags, a JSON config file, a .env
// file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/atinyakov/AssetDesk/internal/client/api"
)

// Options holds the configuration values for the dashboard.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// APIBaseURL is the root of the remote asset API.
	APIBaseURL string `json:"api_base_url"`

	// APICAFile optionally replaces the system roots used to reach the API.
	APICAFile string `json:"api_ca_file"`

	// DatabaseDSN holds the Postgres connection string for sessions. When
	// empty, sessions are kept in memory.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// SessionTTL is used when the access token carries no exp claim.
	SessionTTL time.Duration `json:"-"`

	// CookieSecure sets the Secure attribute on the session cookie.
	CookieSecure bool `json:"cookie_secure"`

	// LoginRate and LoginBurst throttle sign-in attempts per client IP.
	LoginRate  float64 `json:"login_rate"`
	LoginBurst int     `json:"login_burst"`

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that sets those headers.
	TrustProxy bool `json:"trust_proxy"`

	// Config is the path to the JSON config file.
	Config string `json:"-"`
}

// fileOptions mirrors Options for the JSON file, where durations are strings.
type fileOptions struct {
	*Options
	SessionTTL string `json:"session_ttl"`
}

// Load registers flags on set, parses args and applies, in order of
// increasing precedence: defaults, the JSON config file, the .env file,
// environment variables, and flags given explicitly on the command line.
func Load(set *flag.FlagSet, args []string) (*Options, error) {
	opts := &Options{}
	set.StringVar(&opts.Address, "a", "localhost:8080", "run on ip:port server")
	set.StringVar(&opts.APIBaseURL, "api", api.DefaultBaseURL, "asset API base URL")
	set.StringVar(&opts.APICAFile, "api-ca", "", "PEM bundle trusted for the asset API")
	set.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	set.StringVar(&opts.LogLevel, "l", "info", "log level")
	set.StringVar(&opts.TLSCert, "tls-cert", "", "TLS certificate file")
	set.StringVar(&opts.TLSKey, "tls-key", "", "TLS key file")
	set.DurationVar(&opts.SessionTTL, "session-ttl", 8*time.Hour, "session lifetime without a token expiry")
	set.BoolVar(&opts.CookieSecure, "cookie-secure", false, "mark the session cookie Secure")
	set.Float64Var(&opts.LoginRate, "login-rate", 0.2, "sign-in attempts per second per IP")
	set.IntVar(&opts.LoginBurst, "login-burst", 5, "sign-in burst per IP")
	set.BoolVar(&opts.TrustProxy, "trust-proxy", false, "take client addresses from proxy headers")
	set.StringVar(&opts.Config, "config", "config.json", "path to config file")
	set.StringVar(&opts.Config, "c", "config.json", "path to config file (shorthand)")

	if err := set.Parse(args); err != nil {
		return nil, err
	}
	explicit := map[string]bool{}
	set.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if configPath := os.Getenv("CONFIG"); configPath != "" && !explicit["c"] && !explicit["config"] {
		opts.Config = configPath
	}
	if err := applyFile(opts, explicit); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(opts, explicit); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyFile(opts *Options, explicit map[string]bool) error {
	if opts.Config == "" {
		return nil
	}
	data, err := os.ReadFile(opts.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	fromFile := *opts
	wrapper := fileOptions{Options: &fromFile}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	if wrapper.SessionTTL != "" {
		ttl, err := time.ParseDuration(wrapper.SessionTTL)
		if err != nil {
			return fmt.Errorf("error while parsing session_ttl: %w", err)
		}
		fromFile.SessionTTL = ttl
	}

	keep := *opts
	*opts = fromFile
	restoreExplicit(opts, &keep, explicit)
	return nil
}

func restoreExplicit(opts, flags *Options, explicit map[string]bool) {
	if explicit["a"] {
		opts.Address = flags.Address
	}
	if explicit["api"] {
		opts.APIBaseURL = flags.APIBaseURL
	}
	if explicit["api-ca"] {
		opts.APICAFile = flags.APICAFile
	}
	if explicit["d"] {
		opts.DatabaseDSN = flags.DatabaseDSN
	}
	if explicit["l"] {
		opts.LogLevel = flags.LogLevel
	}
	if explicit["tls-cert"] {
		opts.TLSCert = flags.TLSCert
	}
	if explicit["tls-key"] {
		opts.TLSKey = flags.TLSKey
	}
	if explicit["session-ttl"] {
		opts.SessionTTL = flags.SessionTTL
	}
	if explicit["cookie-secure"] {
		opts.CookieSecure = flags.CookieSecure
	}
	if explicit["login-rate"] {
		opts.LoginRate = flags.LoginRate
	}
	if explicit["login-burst"] {
		opts.LoginBurst = flags.LoginBurst
	}
	if explicit["trust-proxy"] {
		opts.TrustProxy = flags.TrustProxy
	}
}

func applyEnv(opts *Options, explicit map[string]bool) error {
	str := func(flagName, env string, dst *string) {
		if v := os.Getenv(env); v != "" && !explicit[flagName] {
			*dst = v
		}
	}
	str("a", "SERVER_ADDRESS", &opts.Address)
	str("api", "API_BASE_URL", &opts.APIBaseURL)
	str("api-ca", "API_CA_FILE", &opts.APICAFile)
	str("d", "DATABASE_DSN", &opts.DatabaseDSN)
	str("l", "LOG_LEVEL", &opts.LogLevel)
	str("tls-cert", "TLS_CERT", &opts.TLSCert)
	str("tls-key", "TLS_KEY", &opts.TLSKey)

	if v := os.Getenv("SESSION_TTL"); v != "" && !explicit["session-ttl"] {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		opts.SessionTTL = ttl
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" && !explicit["cookie-secure"] {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		opts.CookieSecure = secure
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" && !explicit["trust-proxy"] {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY: %w", err)
		}
		opts.TrustProxy = trust
	}
	return nil
}

// Parse loads the configuration from the process arguments and
// environment, exiting on error.
func Parse() *Options {
	opts, err := Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}
