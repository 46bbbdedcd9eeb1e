package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tukushan/simario/internal/catalog"
	"github.com/tukushan/simario/internal/codings"
	"github.com/tukushan/simario/internal/config"
	"github.com/tukushan/simario/internal/dictionary"
	"github.com/tukushan/simario/internal/logging"
	"github.com/tukushan/simario/internal/store"
	"github.com/tukushan/simario/internal/tables"
)

// newLogger builds the command logger from the loaded config.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

// mustLoadConfig loads config under --root or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolveDataset picks the dataset to use. Precedence: --dataset flag >
// config > the only declared dictionary.
func resolveDataset(cfg *config.Config, cat *catalog.File) (catalog.Declaration, error) {
	name := datasetFlag
	if name == "" {
		name = cfg.Dataset
	}
	if name == "" {
		if len(cat.Dictionaries) == 1 {
			return cat.Dictionaries[0], nil
		}
		return catalog.Declaration{}, fmt.Errorf(
			"%d dictionaries declared, select one with --dataset", len(cat.Dictionaries))
	}
	decl, ok := cat.Lookup(name)
	if !ok {
		return catalog.Declaration{}, fmt.Errorf("dataset %q is not declared in %s", name, catalog.CatalogFile)
	}
	return decl, nil
}

// loadCatalog parses the catalog file referenced by the config.
func loadCatalog(cfg *config.Config) (*catalog.File, error) {
	path := cfg.Catalog
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootFlag, path)
	}
	return catalog.Parse(path)
}

// buildDictionary compiles a dictionary from a declaration's source tables.
func buildDictionary(cfg *config.Config, decl catalog.Declaration) (*dictionary.Dictionary, error) {
	descRows, err := tables.ReadDescriptions(decl.Descriptions)
	if err != nil {
		return nil, fmt.Errorf("descriptions table: %w", err)
	}

	var codingRows []dictionary.CodingRow
	if decl.Codings != "" {
		codingRows, err = tables.ReadCodings(decl.Codings)
		if err != nil {
			return nil, fmt.Errorf("codings table: %w", err)
		}
	}

	dict, err := dictionary.New(descRows, codingRows, codings.Evaluate)
	if err != nil {
		return nil, err
	}

	baseline := decl.BaselineWeighting
	if baseline == "" {
		baseline = cfg.Weighting.Baseline
	}
	return dict.WithBaselineWeighting(baseline), nil
}

// openDictionary returns the dictionary for the selected dataset,
// preferring a compiled build from the store and falling back to the
// source tables.
func openDictionary(cfg *config.Config, logger *logging.Logger) (*dictionary.Dictionary, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	decl, err := resolveDataset(cfg, cat)
	if err != nil {
		return nil, err
	}

	storePath := cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(rootFlag, storePath)
	}
	if _, err := os.Stat(storePath); err == nil {
		db, err := store.Open(storePath, logger)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		dict, buildID, err := db.Load(decl.Name)
		if err == nil {
			logger.Debug("Loaded compiled dictionary", map[string]interface{}{
				"dataset": decl.Name,
				"buildId": buildID,
			})
			return dict, nil
		}
		if !errors.Is(err, store.ErrNoBuild) {
			return nil, err
		}
	}

	logger.Debug("Compiling dictionary from source tables", map[string]interface{}{
		"dataset": decl.Name,
	})
	return buildDictionary(cfg, decl)
}
