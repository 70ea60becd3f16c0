package main

import (
	"github.com/spf13/cobra"

	"github.com/crestlab/featurize/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

// ConfigResult is the response for the config command. The API key is
// redacted.
type ConfigResult struct {
	Path          string `json:"path"`
	ProviderURL   string `json:"provider_url,omitempty"`
	DescriptorSet string `json:"descriptor_set,omitempty"`
	Workers       int    `json:"workers,omitempty"`
	CachePath     string `json:"cache_path,omitempty"`
	APIKeySet     bool   `json:"api_key_set"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	result := ConfigResult{
		Path:          config.Path(),
		ProviderURL:   cfg.ProviderURL,
		DescriptorSet: cfg.DescriptorSet,
		Workers:       cfg.Workers,
		CachePath:     cfg.CachePath,
		APIKeySet:     cfg.APIKey != "",
	}
	if humanOutput {
		outputHuman("config file: %s\n", result.Path)
		outputHuman("provider_url: %s\n", result.ProviderURL)
		outputHuman("descriptor_set: %s\n", result.DescriptorSet)
		outputHuman("workers: %d\n", result.Workers)
		outputHuman("cache_path: %s\n", result.CachePath)
		outputHuman("api_key_set: %v\n", result.APIKeySet)
		return nil
	}
	return outputJSON(result)
}
