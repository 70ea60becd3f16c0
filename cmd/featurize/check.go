package main

import (
	"github.com/spf13/cobra"
)

var checkURL string

func init() {
	checkCmd.Flags().StringVar(&checkURL, "provider", "", "Descriptor service URL")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the descriptor service is reachable",
	RunE:  runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status        string `json:"status"`
	ProviderURL   string `json:"provider_url,omitempty"`
	DescriptorSet string `json:"descriptor_set"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	client := newProviderClient(cfg, checkURL, "")

	if err := client.IsAvailable(cmd.Context()); err != nil {
		exitWithError(ExitNoProvider, "descriptor service unavailable: %v", err)
	}

	result := CheckResult{
		Status:        "ok",
		ProviderURL:   cfg.ProviderURL,
		DescriptorSet: client.DescriptorSet(),
	}
	if humanOutput {
		outputHuman("descriptor service is available (set %s)\n", result.DescriptorSet)
		return nil
	}
	return outputJSON(result)
}
