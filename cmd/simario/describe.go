package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tukushan/simario/internal/results"
)

// resultEntry is one result in a panel file. Exactly one shape should be
// populated; toResult picks the richest one present.
type resultEntry struct {
	Meta  *results.Meta       `json:"meta,omitempty" yaml:"meta,omitempty"`
	Dims  []results.Dimension `json:"dims,omitempty" yaml:"dims,omitempty"`
	Cells []float64           `json:"cells,omitempty" yaml:"cells,omitempty"`
	Text  []string            `json:"text,omitempty" yaml:"text,omitempty"`
	Value *float64            `json:"value,omitempty" yaml:"value,omitempty"`
}

// toResult maps the entry onto a resolver variant. Tables win over text
// sequences, text over scalars; a bare meta becomes a scalar so metadata
// resolution still applies.
func (e resultEntry) toResult() any {
	switch {
	case len(e.Dims) > 0:
		return &results.Table{Meta: e.Meta, Dims: e.Dims, Cells: e.Cells}
	case len(e.Text) > 0:
		return e.Text
	case e.Value != nil:
		return &results.Scalar{Meta: e.Meta, Value: *e.Value}
	default:
		return &results.Scalar{Meta: e.Meta}
	}
}

// DescribedResult pairs a result's resolved description with the variable
// it resolved to.
type DescribedResult struct {
	Varname     string `json:"varname,omitempty"`
	Description string `json:"description"`
}

// DescribeResponse is the output of the describe command.
type DescribeResponse struct {
	Results []DescribedResult `json:"results"`
}

var (
	describeFormat string
	describeSort   bool
)

var describeCmd = &cobra.Command{
	Use:   "describe <panel-file>",
	Short: "Resolve descriptions for a panel of computed results",
	Long: `Describe reads a panel of results from a JSON or YAML file and prints
the human-readable description of each. The first result that cannot be
resolved fails the whole panel. With --sort the results are reordered by
ascending description, ties keeping their file order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		dict, err := openDictionary(cfg, logger)
		if err != nil {
			return err
		}

		entries, err := readPanel(args[0])
		if err != nil {
			return err
		}
		items := make([]any, len(entries))
		for i, e := range entries {
			items[i] = e.toResult()
		}

		if describeSort {
			items, err = dict.OrderByDescription(items...)
			if err != nil {
				return err
			}
		}

		resp := &DescribeResponse{}
		for _, item := range items {
			desc, err := dict.Describe(item)
			if err != nil {
				return err
			}
			r := DescribedResult{Description: desc}
			if tagged, ok := item.(results.Tagged); ok {
				if meta := tagged.ResultMeta(); meta != nil {
					r.Varname = meta.Varname
				}
			}
			resp.Results = append(resp.Results, r)
		}

		out, err := FormatResponse(resp, OutputFormat(describeFormat))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// readPanel parses a panel file as YAML or JSON by extension.
func readPanel(path string) ([]resultEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []resultEntry
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func init() {
	describeCmd.Flags().StringVar(&describeFormat, "format", string(FormatHuman), "Output format (json or human)")
	describeCmd.Flags().BoolVar(&describeSort, "sort", false, "Order results by description")
	rootCmd.AddCommand(describeCmd)
}
