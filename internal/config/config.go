package config

import (
	"fmt"
	"strings"
)

// Vendor names with built-in defaults.
const (
	VendorOpenAI = "openai"
	VendorGroq   = "groq"
	VendorCompat = "compat"
)

// Default endpoints for the built-in vendors.
const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GroqBaseURL   = "https://api.groq.com/openai/v1"
)

// Config is the forwarder service configuration.
type Config struct {
	Server  ServerConfig            `yaml:"server"`
	Vendors map[string]VendorConfig `yaml:"vendors"`
	Routes  []RouteConfig           `yaml:"routes"`
	Log     LogConfig               `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// AllowOrigin, when set, is sent as Access-Control-Allow-Origin on streams.
	AllowOrigin string `yaml:"allow_origin"`
}

// VendorConfig describes one completion API endpoint.
type VendorConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds bounds a vendor call; zero means no client-side timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// RouteConfig binds an HTTP path to a vendor, a model and a response mode.
type RouteConfig struct {
	Path   string `yaml:"path"`
	Vendor string `yaml:"vendor"`
	Model  string `yaml:"model"`
	Stream bool   `yaml:"stream"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Defaults returns the stock deployment: a Groq batch
// endpoint and an OpenAI streaming endpoint.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Vendors: map[string]VendorConfig{
			VendorOpenAI: {BaseURL: OpenAIBaseURL},
			VendorGroq:   {BaseURL: GroqBaseURL},
		},
		Routes: []RouteConfig{
			{Path: "/api/chat", Vendor: VendorGroq, Model: "llama-3.3-70b-versatile"},
			{Path: "/api/chat_openai", Vendor: VendorOpenAI, Model: "gpt-4", Stream: true},
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Validate checks that every route is reachable and points at a known vendor.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if len(c.Routes) == 0 {
		return fmt.Errorf("at least one route is required")
	}

	seen := make(map[string]bool, len(c.Routes))
	for i, rt := range c.Routes {
		if !strings.HasPrefix(rt.Path, "/") {
			return fmt.Errorf("routes[%d].path must start with /, got %q", i, rt.Path)
		}
		if seen[rt.Path] {
			return fmt.Errorf("routes[%d].path %q is declared twice", i, rt.Path)
		}
		seen[rt.Path] = true

		if strings.TrimSpace(rt.Model) == "" {
			return fmt.Errorf("routes[%d].model is required", i)
		}
		vendor, ok := c.Vendors[rt.Vendor]
		if !ok {
			return fmt.Errorf("routes[%d].vendor %q is not configured", i, rt.Vendor)
		}
		if strings.TrimSpace(vendor.BaseURL) == "" {
			return fmt.Errorf("vendors.%s.base_url is required", rt.Vendor)
		}
	}
	return nil
}
