package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	cfg := LoadConfig()

	req.Equal("dev", cfg.Env)
	req.Equal(":8080", cfg.HTTPAddr)
	req.Equal(60, cfg.RateLimitRPM)
	req.NotEmpty(cfg.CORSAllow)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("CORS_ALLOW", "https://a.example, https://b.example,")

	cfg := LoadConfig()

	req.Equal("prod", cfg.Env)
	req.Equal(":9090", cfg.HTTPAddr)
	req.Equal(120, cfg.RateLimitRPM)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.CORSAllow)
}
