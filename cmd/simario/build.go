package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tukushan/simario/internal/store"
)

// BuildResponse is the output of the build command.
type BuildResponse struct {
	Dataset   string `json:"dataset"`
	BuildID   string `json:"buildId"`
	Variables int    `json:"variables"`
	Codings   int    `json:"codings"`
}

var buildFormat string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the dictionary from its source tables into the store",
	Long: `Build reads the descriptions and codings tables declared for the
dataset, evaluates every coding expression, and caches the compiled
dictionary in the store. Later commands load the compiled build instead
of re-parsing the sources.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		decl, err := resolveDataset(cfg, cat)
		if err != nil {
			return err
		}

		dict, err := buildDictionary(cfg, decl)
		if err != nil {
			return err
		}

		storePath := cfg.Store.Path
		if !filepath.IsAbs(storePath) {
			storePath = filepath.Join(rootFlag, storePath)
		}
		db, err := store.Open(storePath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		buildID, err := db.Save(decl.Name, dict)
		if err != nil {
			return err
		}

		resp := &BuildResponse{
			Dataset:   decl.Name,
			BuildID:   buildID,
			Variables: len(dict.Varnames()),
			Codings:   len(dict.CodedVarnames()),
		}
		out, err := FormatResponse(resp, OutputFormat(buildFormat))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", string(FormatHuman), "Output format (json or human)")
	rootCmd.AddCommand(buildCmd)
}
