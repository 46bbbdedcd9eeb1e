// Package catalog parses DICTIONARIES.toml, the declaration file mapping
// each study's dictionary to its source tables.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// CatalogFile is the default filename for dictionary declarations.
const CatalogFile = "DICTIONARIES.toml"

// Declaration describes one dictionary's source tables.
type Declaration struct {
	// Name identifies the study or dataset the dictionary belongs to
	Name string `toml:"name"`

	// Descriptions is the path to the descriptions table (Varname, Description)
	Descriptions string `toml:"descriptions"`

	// Codings is the path to the optional codings table (Varname, CodingsExpr)
	Codings string `toml:"codings,omitempty"`

	// BaselineWeighting overrides the weighting tag treated as baseline
	BaselineWeighting string `toml:"baseline_weighting,omitempty"`
}

// File represents the root structure of DICTIONARIES.toml
type File struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Dictionaries is the list of declared dictionaries
	Dictionaries []Declaration `toml:"dictionary"`
}

// Parse reads and validates a DICTIONARIES.toml file. Relative source
// paths resolve against the file's directory.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CatalogFile, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CatalogFile, err)
	}

	if f.Version != 1 {
		return nil, fmt.Errorf("%s: unsupported version %d, want 1", CatalogFile, f.Version)
	}
	if len(f.Dictionaries) == 0 {
		return nil, fmt.Errorf("%s: no dictionaries declared", CatalogFile)
	}

	dir := filepath.Dir(path)
	seen := make(map[string]bool, len(f.Dictionaries))
	for i := range f.Dictionaries {
		d := &f.Dictionaries[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%s: dictionary %d has no name", CatalogFile, i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%s: duplicate dictionary name %q", CatalogFile, d.Name)
		}
		seen[d.Name] = true
		if d.Descriptions == "" {
			return nil, fmt.Errorf("%s: dictionary %q has no descriptions table", CatalogFile, d.Name)
		}
		d.Descriptions = resolve(dir, d.Descriptions)
		if d.Codings != "" {
			d.Codings = resolve(dir, d.Codings)
		}
	}
	return &f, nil
}

// Lookup returns the declaration with the given name.
func (f *File) Lookup(name string) (Declaration, bool) {
	for _, d := range f.Dictionaries {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
