package config

import (
	"fmt"
	"maps"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable pointing at a YAML file.
const EnvConfigPath = "KATE_CONFIG"

// Load builds the configuration from, in order:
//  1. Built-in defaults
//  2. A .env file in the working directory, if present
//  3. A YAML file (explicit path, KATE_CONFIG, ./config.yaml)
//  4. Environment variables
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if path := discoverConfigFile(configPath); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// loadYAMLFile parses path over cfg. Fields missing from the file keep
// their current values, including those of vendors the file only partly
// overrides. A routes list in the file replaces the current one.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// yaml.v3 decodes map values into fresh zero structs, so vendor
	// entries are decoded one by one over a copy of their current value.
	var file struct {
		Vendors map[string]yaml.Node `yaml:"vendors"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	vendors := maps.Clone(cfg.Vendors)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if vendors == nil {
		vendors = make(map[string]VendorConfig, len(file.Vendors))
	}
	for name, node := range file.Vendors {
		vendor := vendors[name]
		if err := node.Decode(&vendor); err != nil {
			return fmt.Errorf("vendors.%s: %w", name, err)
		}
		vendors[name] = vendor
	}
	cfg.Vendors = vendors
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ALLOW_ORIGIN"); v != "" {
		cfg.Server.AllowOrigin = v
	}

	if cfg.Vendors == nil {
		cfg.Vendors = make(map[string]VendorConfig)
	}
	setAPIKey(cfg, VendorOpenAI, os.Getenv("OPENAI_API_KEY"))
	setAPIKey(cfg, VendorGroq, os.Getenv("GROQ_API_KEY"))

	// The compatible endpoint only exists when a base URL is provided.
	if baseURL := os.Getenv("COMPAT_BASE_URL"); baseURL != "" {
		vendor := cfg.Vendors[VendorCompat]
		vendor.BaseURL = baseURL
		cfg.Vendors[VendorCompat] = vendor

		model := os.Getenv("COMPAT_MODEL")
		if model == "" {
			model = "llama-3.3-70b-versatile"
		}
		if !hasRoute(cfg, "/api/chat_compat") {
			cfg.Routes = append(cfg.Routes, RouteConfig{
				Path:   "/api/chat_compat",
				Vendor: VendorCompat,
				Model:  model,
				Stream: true,
			})
		}
	}
	setAPIKey(cfg, VendorCompat, os.Getenv("COMPAT_API_KEY"))

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// setAPIKey only touches vendors that are already configured.
func setAPIKey(cfg *Config, name, key string) {
	if key == "" {
		return
	}
	vendor, ok := cfg.Vendors[name]
	if !ok {
		return
	}
	vendor.APIKey = key
	cfg.Vendors[name] = vendor
}

func hasRoute(cfg *Config, path string) bool {
	for _, rt := range cfg.Routes {
		if rt.Path == path {
			return true
		}
	}
	return false
}
