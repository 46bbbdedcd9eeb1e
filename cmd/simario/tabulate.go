package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tukushan/simario/internal/results"
	"github.com/tukushan/simario/internal/stats"
	"github.com/tukushan/simario/internal/tables"
)

// TabulateResponse is the output of the tabulate command: an annotated
// one-dimensional summary. Categories is empty for scalar statistics.
type TabulateResponse struct {
	Title      string    `json:"title"`
	Varname    string    `json:"varname"`
	Stat       string    `json:"stat"`
	Categories []string  `json:"categories,omitempty"`
	Values     []float64 `json:"values"`
}

var (
	tabFormat  string
	tabData    string
	tabVar     string
	tabBy      string
	tabWeights string
	tabStat    string
	tabSet     string
	tabProbs   []float64
)

var tabulateCmd = &cobra.Command{
	Use:   "tabulate",
	Short: "Summarize a simulation output column with labeled categories",
	Long: `Tabulate computes a frequency, mean or quantile summary of one column
of a simulation output file, substitutes coded values with their category
labels, and titles the table with the variable's resolved description.
With --by the summary is cross-tabulated by a second coded column.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		dict, err := openDictionary(cfg, logger)
		if err != nil {
			return err
		}

		var weights []float64
		if tabWeights != "" {
			weights, err = tables.ReadNumericColumn(tabData, tabWeights)
			if err != nil {
				return err
			}
		}
		meta := results.Meta{
			Varname:   tabVar,
			GrpbyTag:  tabBy,
			Set:       tabSet,
			Weighting: tabWeights,
		}

		var table *results.Table
		var scalar *results.Scalar
		switch tabStat {
		case "freq":
			values, err := tables.ReadColumn(tabData, tabVar)
			if err != nil {
				return err
			}
			if tabBy == "" {
				table, err = stats.Freq(values, weights, meta)
			} else {
				var groups []string
				groups, err = tables.ReadColumn(tabData, tabBy)
				if err != nil {
					return err
				}
				table, err = stats.GroupedFreq(values, groups, weights, meta)
			}
			if err != nil {
				return err
			}

		case "mean":
			values, err := tables.ReadNumericColumn(tabData, tabVar)
			if err != nil {
				return err
			}
			if tabBy == "" {
				scalar, err = stats.Mean(values, weights, meta)
			} else {
				var groups []string
				groups, err = tables.ReadColumn(tabData, tabBy)
				if err != nil {
					return err
				}
				table, err = stats.MeanByGroup(values, groups, weights, meta)
			}
			if err != nil {
				return err
			}

		case "quantile":
			if tabBy != "" {
				return fmt.Errorf("quantile does not support --by")
			}
			values, err := tables.ReadNumericColumn(tabData, tabVar)
			if err != nil {
				return err
			}
			table, err = stats.Quantiles(values, tabProbs, meta)
			if err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown stat %q, expected freq, mean or quantile", tabStat)
		}

		resp := &TabulateResponse{Varname: tabVar, Stat: tabStat}
		if scalar != nil {
			resp.Title, err = dict.Describe(scalar)
			if err != nil {
				return err
			}
			resp.Values = []float64{scalar.Value}
		} else {
			resp.Title, err = dict.Describe(table)
			if err != nil {
				return err
			}
			resp.Categories, err = labelCategories(dict, table, tabStat)
			if err != nil {
				return err
			}
			resp.Values = table.Cells
		}

		out, err := FormatResponse(resp, OutputFormat(tabFormat))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// labelCategories substitutes a summary table's raw category codes with
// their labels. Quantile labels are probability points and pass through;
// grouped frequencies use the flattened composite encoding.
func labelCategories(dict dictResolver, table *results.Table, stat string) ([]string, error) {
	labels := table.Dims[0].Labels
	if stat == "quantile" {
		return labels, nil
	}
	meta := table.Meta
	if stat == "freq" && meta.GrpbyTag != "" {
		return dict.MatchFlattenedCodes(labels, meta.Varname, meta.GrpbyTag)
	}
	// A grouped mean's dimension carries the grouping variable's codes.
	return dict.MatchCodes(labels, table.Dims[0].Name), nil
}

// dictResolver is the slice of the dictionary tabulate needs; tests
// substitute a fake.
type dictResolver interface {
	MatchCodes(values []string, varname string) []string
	MatchFlattenedCodes(flat []string, varname, grpbyTag string) ([]string, error)
}

func init() {
	tabulateCmd.Flags().StringVar(&tabFormat, "format", string(FormatHuman), "Output format (json or human)")
	tabulateCmd.Flags().StringVar(&tabData, "data", "", "Simulation output file (CSV, optionally gzipped)")
	tabulateCmd.Flags().StringVar(&tabVar, "var", "", "Variable column to summarize")
	tabulateCmd.Flags().StringVar(&tabBy, "by", "", "Coded column to cross-tabulate by")
	tabulateCmd.Flags().StringVar(&tabWeights, "weights", "", "Weighting column")
	tabulateCmd.Flags().StringVar(&tabStat, "stat", "freq", "Statistic (freq, mean or quantile)")
	tabulateCmd.Flags().StringVar(&tabSet, "set", "", "Subset qualifier for the title")
	tabulateCmd.Flags().Float64SliceVar(&tabProbs, "probs", []float64{0.25, 0.5, 0.75}, "Quantile probability points")
	tabulateCmd.MarkFlagRequired("data")
	tabulateCmd.MarkFlagRequired("var")
	rootCmd.AddCommand(tabulateCmd)
}
