// Package config manages the service configuration through command-line
// flags with environment-variable overrides.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// defaultReservedPaths lists the literal top-level segments that must never be
// resolved as short codes, whatever the store contains.
const defaultReservedPaths = "admin,api,dashboard,data,debug,go,health,links,login,logout,logs,ping,r,register"

// Options holds the runtime configuration.
type Options struct {
	// Addr is the server's listening address (ip:port).
	Addr string

	// BaseURL is the single process-wide base every public link URL is
	// derived from.
	BaseURL string

	// DatabaseDSN selects Postgres; when empty the in-memory store is used.
	DatabaseDSN string

	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string

	// JWTSecret signs and verifies principal tokens.
	JWTSecret string

	// ReservedPaths is a comma-separated list of segments the resolver must
	// refuse before any store lookup.
	ReservedPaths string

	// CodeLength is the short-code length in alphabet symbols.
	CodeLength int

	// TrustedSubnet is the CIDR allowed to call internal endpoints.
	TrustedSubnet string

	// EnablePprof starts the profiling listener.
	EnablePprof bool

	// EnableHTTPS serves TLS through autocert.
	EnableHTTPS bool
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "public base url")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.JWTSecret, "j", "supersecretkey", "jwt signing secret")
	flag.StringVar(&options.ReservedPaths, "r", defaultReservedPaths, "comma-separated reserved path segments")
	flag.IntVar(&options.CodeLength, "n", 8, "short code length")
	flag.StringVar(&options.TrustedSubnet, "t", "", "trusted subnet CIDR for internal endpoints")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
}

// Parse resolves flags, applies environment overrides and returns the final
// configuration.
func Parse() *Options {
	flag.Parse()
	return applyEnv(options)
}

func applyEnv(o *Options) *Options {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		o.Addr = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		o.BaseURL = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		o.DatabaseDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		o.LogLevel = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		o.JWTSecret = v
	}
	if v := os.Getenv("RESERVED_PATHS"); v != "" {
		o.ReservedPaths = v
	}
	if v := os.Getenv("CODE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.CodeLength = n
		}
	}
	if v := os.Getenv("TRUSTED_SUBNET"); v != "" {
		o.TrustedSubnet = v
	}
	if v := os.Getenv("ENABLE_PPROF"); v != "" {
		o.EnablePprof, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ENABLE_HTTPS"); v != "" {
		o.EnableHTTPS, _ = strconv.ParseBool(v)
	}

	// Trim a trailing slash so URL derivation can always append "/r/{code}".
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return o
}

// ReservedPathSet splits the configured list into clean segments.
func (o *Options) ReservedPathSet() []string {
	parts := strings.Split(o.ReservedPaths, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
