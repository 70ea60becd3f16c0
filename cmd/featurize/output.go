package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/crestlab/featurize/internal/feature"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FeaturesResult is the response for batch featurization commands.
type FeaturesResult struct {
	Count    int            `json:"count"`
	Failed   []int          `json:"failed,omitempty"`
	Width    int            `json:"width"`
	Uniform  bool           `json:"uniform"`
	Features feature.Matrix `json:"features"`
}

// newFeaturesResult summarizes a feature matrix.
func newFeaturesResult(mat feature.Matrix) FeaturesResult {
	width, uniform := mat.Uniform()
	return FeaturesResult{
		Count:    mat.Rows(),
		Failed:   mat.Failed(),
		Width:    width,
		Uniform:  uniform,
		Features: mat,
	}
}

// printFeaturesResult writes a result in the selected output format.
func printFeaturesResult(result FeaturesResult) {
	if !humanOutput {
		outputJSON(result)
		return
	}

	outputHuman("featurized %d datapoints (%d failed), width %d\n",
		result.Count, len(result.Failed), result.Width)
	for _, idx := range result.Failed {
		outputHuman("  datapoint %d: failed, empty vector substituted\n", idx)
	}
}
