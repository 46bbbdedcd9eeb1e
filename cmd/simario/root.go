package main

import (
	"github.com/spf13/cobra"

	"github.com/tukushan/simario/internal/version"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// datasetFlag overrides the configured dataset
	datasetFlag string
)

var rootCmd = &cobra.Command{
	Use:   "simario",
	Short: "simario - microsimulation output annotation",
	Long: `simario labels statistical summaries of simulated population variables.
It resolves internal variable names (e.g. SESBTH, gptotvis) to human-readable
descriptions and coded categorical values to their category labels, including
composite results cross-tabulated by a second variable.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("simario version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Project root containing .simario/ and DICTIONARIES.toml")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "",
		"Dataset to use (default: config, or the only declared dictionary)")
}
