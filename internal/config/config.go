package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is everything the client needs to reach the BloomGarden
// service. The catalog URL may be empty, in which case the embedded
// sample catalog is used.
type Config struct {
	ServiceURL string `yaml:"service_url"`
	CatalogURL string `yaml:"catalog_url"`
	LoginPath  string `yaml:"login_path"`
	TasksPath  string `yaml:"tasks_path"`
}

// Default returns the configuration for a locally running service.
func Default() Config {
	return Config{
		ServiceURL: "http://localhost:5000",
		LoginPath:  "/login",
		TasksPath:  "/tasks",
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.ServiceURL == "" {
		c.ServiceURL = d.ServiceURL
	}
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.TasksPath == "" {
		c.TasksPath = d.TasksPath
	}
}

// Load reads a yaml config file and fills in defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}

// FromEnv loads configuration from environment variables, falling
// back to defaults for anything unset.
func FromEnv() Config {
	c := Default()
	if v := os.Getenv("BLOOMGARDEN_SERVICE_URL"); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv("BLOOMGARDEN_CATALOG_URL"); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv("BLOOMGARDEN_LOGIN_PATH"); v != "" {
		c.LoginPath = v
	}
	if v := os.Getenv("BLOOMGARDEN_TASKS_PATH"); v != "" {
		c.TasksPath = v
	}
	return c
}
