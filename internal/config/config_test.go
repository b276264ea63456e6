package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseOptions() *Options {
	return &Options{
		Addr:          "localhost:8080",
		BaseURL:       "http://localhost:8080",
		LogLevel:      "info",
		JWTSecret:     "supersecretkey",
		ReservedPaths: defaultReservedPaths,
		CodeLength:    8,
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("BASE_URL", "https://sho.rt/")
	t.Setenv("DATABASE_DSN", "postgres://localhost/links")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RESERVED_PATHS", "go,r,api")
	t.Setenv("CODE_LENGTH", "10")
	t.Setenv("TRUSTED_SUBNET", "10.0.0.0/8")
	t.Setenv("ENABLE_PPROF", "true")

	o := applyEnv(baseOptions())

	assert.Equal(t, ":9090", o.Addr)
	assert.Equal(t, "https://sho.rt", o.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "postgres://localhost/links", o.DatabaseDSN)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "from-env", o.JWTSecret)
	assert.Equal(t, "go,r,api", o.ReservedPaths)
	assert.Equal(t, 10, o.CodeLength)
	assert.Equal(t, "10.0.0.0/8", o.TrustedSubnet)
	assert.True(t, o.EnablePprof)
}

func TestApplyEnvKeepsDefaults(t *testing.T) {
	o := applyEnv(baseOptions())

	assert.Equal(t, "localhost:8080", o.Addr)
	assert.Equal(t, defaultReservedPaths, o.ReservedPaths)
	assert.Equal(t, 8, o.CodeLength)
	assert.False(t, o.EnableHTTPS)
}

func TestApplyEnvInvalidCodeLength(t *testing.T) {
	t.Setenv("CODE_LENGTH", "not-a-number")
	o := applyEnv(baseOptions())
	assert.Equal(t, 8, o.CodeLength)

	t.Setenv("CODE_LENGTH", "-3")
	o = applyEnv(baseOptions())
	assert.Equal(t, 8, o.CodeLength)
}

func TestReservedPathSet(t *testing.T) {
	o := baseOptions()
	o.ReservedPaths = "admin, api,,go , "

	assert.Equal(t, []string{"admin", "api", "go"}, o.ReservedPathSet())
}

func TestReservedPathSetDefaults(t *testing.T) {
	set := baseOptions().ReservedPathSet()

	assert.Contains(t, set, "admin")
	assert.Contains(t, set, "go")
	assert.Contains(t, set, "r")
	assert.Contains(t, set, "ping")
	assert.Contains(t, set, "health")
}
