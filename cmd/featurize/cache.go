package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the local feature cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show feature cache statistics",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached feature vectors",
	RunE:  runCacheClear,
}

// CacheInfoResult is the response for the cache info command.
type CacheInfoResult struct {
	Path           string   `json:"path"`
	Entries        int      `json:"entries"`
	DescriptorSets []string `json:"descriptor_sets,omitempty"`
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := openCache(cfg)
	stats, err := db.Stats()
	db.Close()
	if err != nil {
		exitWithError(ExitError, "reading cache stats: %v", err)
	}

	result := CacheInfoResult{
		Path:           cfg.CachePath,
		Entries:        stats.Entries,
		DescriptorSets: stats.DescriptorSets,
	}
	if humanOutput {
		outputHuman("cache %s: %d entries across %d descriptor sets\n",
			result.Path, result.Entries, len(result.DescriptorSets))
		return nil
	}
	return outputJSON(result)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := openCache(cfg)
	err := db.Clear()
	db.Close()
	if err != nil {
		exitWithError(ExitError, "clearing cache: %v", err)
	}

	if humanOutput {
		outputHuman("cache cleared\n")
		return nil
	}
	return outputJSON(map[string]string{"status": "cleared"})
}
