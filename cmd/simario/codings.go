package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CodingEntry is one variable's ordered category labels.
type CodingEntry struct {
	Varname string   `json:"varname"`
	Labels  []string `json:"labels,omitempty"`
}

// CodingsResponse is the output of the codings command.
type CodingsResponse struct {
	Codings []CodingEntry `json:"codings"`
}

var codingsFormat string

var codingsCmd = &cobra.Command{
	Use:   "codings [varname...]",
	Short: "Show the category labels of coded variables",
	Long: `Codings prints the ordered category labels of each named variable's
coding. Without arguments every coded variable is listed. Variables
without a coding appear with no labels so callers can tell "uncoded"
apart from "unknown".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		dict, err := openDictionary(cfg, logger)
		if err != nil {
			return err
		}

		varnames := args
		if len(varnames) == 0 {
			varnames = dict.CodedVarnames()
		}
		labels := dict.CodingLabels(varnames)

		resp := &CodingsResponse{}
		for _, varname := range varnames {
			resp.Codings = append(resp.Codings, CodingEntry{
				Varname: varname,
				Labels:  labels[varname],
			})
		}

		out, err := FormatResponse(resp, OutputFormat(codingsFormat))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	codingsCmd.Flags().StringVar(&codingsFormat, "format", string(FormatHuman), "Output format (json or human)")
	rootCmd.AddCommand(codingsCmd)
}
