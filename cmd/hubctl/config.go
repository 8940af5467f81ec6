package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/galaxyops/hub-console/internal/hub"
)

// cliConfig is the on-disk hubctl configuration.
type cliConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// loadConfig merges the config file, environment and flags, most specific
// last.
func loadConfig(cmd *cobra.Command) (*cliConfig, error) {
	cfg := &cliConfig{}

	if path, err := configPath(); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("HUB_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("HUB_TOKEN"); v != "" {
		cfg.Token = v
	}

	if v, _ := cmd.Flags().GetString("url"); v != "" {
		cfg.URL = v
	}
	if v, _ := cmd.Flags().GetString("token"); v != "" {
		cfg.Token = v
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("no hub URL configured: set --url, HUB_URL, or url in %s", mustConfigPath())
	}
	return cfg, nil
}

// hubClient builds an API client from the merged configuration.
func hubClient(cmd *cobra.Command) (*hub.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	client := hub.NewClient(cfg.URL)
	if cfg.Token != "" {
		client = client.WithToken(cfg.Token)
	}
	return client, nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hubctl", "config.yaml"), nil
}

func mustConfigPath() string {
	path, err := configPath()
	if err != nil {
		return "~/.config/hubctl/config.yaml"
	}
	return path
}
