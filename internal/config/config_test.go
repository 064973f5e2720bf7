package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:         "secure-secret-at-least-32-chars-long",
		Port:              "8480",
		DBPassword:        "secure-password",
		Env:               "development",
		TrendingThreshold: 5,
		DefaultPageSize:   20,
		AdminPageSize:     50,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero trending threshold", func(c *Config) { c.TrendingThreshold = 0 }, true},
		{"negative trending threshold", func(c *Config) { c.TrendingThreshold = -3 }, true},
		{"zero default page size", func(c *Config) { c.DefaultPageSize = 0 }, true},
		{"zero admin page size", func(c *Config) { c.AdminPageSize = 0 }, true},
		{"production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"valid production config", func(c *Config) { c.Env = "production" }, false},
		{"prod alias is also strict", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
