package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/crestlab/featurize/internal/config"
	"github.com/crestlab/featurize/internal/provider"
	"github.com/crestlab/featurize/internal/store"
)

// mustLoadConfig loads the effective configuration or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newProviderClient builds a descriptor service client from configuration
// plus command-line overrides.
func newProviderClient(cfg *config.Config, urlFlag, setFlag string) *provider.Client {
	var opts []provider.Option
	if cfg.ProviderURL != "" {
		opts = append(opts, provider.WithBaseURL(cfg.ProviderURL))
	}
	if cfg.DescriptorSet != "" {
		opts = append(opts, provider.WithDescriptorSet(cfg.DescriptorSet))
	}
	if cfg.APIKey != "" {
		opts = append(opts, provider.WithAPIKey(cfg.APIKey))
	}
	if urlFlag != "" {
		opts = append(opts, provider.WithBaseURL(urlFlag))
	}
	if setFlag != "" {
		opts = append(opts, provider.WithDescriptorSet(setFlag))
	}
	return provider.New(opts...)
}

// openCache opens the configured feature cache or exits.
func openCache(cfg *config.Config) *store.DB {
	if cfg.CachePath == "" {
		exitWithError(ExitConfigError, "no cache path configured")
	}
	db, err := store.Open(cfg.CachePath)
	if err != nil {
		exitWithError(ExitConfigError, "opening cache: %v", err)
	}
	return db
}

// readInputLines collects datapoints from command arguments or, if a file
// is given, from its non-blank lines. Lines starting with '#' are skipped.
func readInputLines(args []string, inputFile string) ([]string, error) {
	if inputFile == "" {
		return args, nil
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return append(lines, args...), nil
}
