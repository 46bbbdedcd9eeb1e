package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VarEntry is one variable in a VarsResponse.
type VarEntry struct {
	Varname     string `json:"varname"`
	Description string `json:"description"`
	Coded       bool   `json:"coded"`
}

// VarsResponse is the output of the vars command.
type VarsResponse struct {
	Dataset   string     `json:"dataset"`
	Variables []VarEntry `json:"variables"`
}

var (
	varsFormat    string
	varsCodedOnly bool
)

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "List the dictionary's variables and their descriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		dict, err := openDictionary(cfg, logger)
		if err != nil {
			return err
		}

		resp := &VarsResponse{Dataset: cfg.Dataset}
		for _, varname := range dict.Varnames() {
			_, coded := dict.CodeTable(varname)
			if varsCodedOnly && !coded {
				continue
			}
			desc, _ := dict.Description(varname)
			resp.Variables = append(resp.Variables, VarEntry{
				Varname:     varname,
				Description: desc,
				Coded:       coded,
			})
		}

		out, err := FormatResponse(resp, OutputFormat(varsFormat))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	varsCmd.Flags().StringVar(&varsFormat, "format", string(FormatHuman), "Output format (json or human)")
	varsCmd.Flags().BoolVar(&varsCodedOnly, "coded", false, "Only list variables with a coding")
	rootCmd.AddCommand(varsCmd)
}
