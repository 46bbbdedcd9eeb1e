package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *BuildResponse:
		return formatBuildHuman(v), nil
	case *VarsResponse:
		return formatVarsHuman(v), nil
	case *CodingsResponse:
		return formatCodingsHuman(v), nil
	case *DescribeResponse:
		return formatDescribeHuman(v), nil
	case *TabulateResponse:
		return formatTabulateHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatBuildHuman(resp *BuildResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Compiled dictionary for %s\n", resp.Dataset))
	b.WriteString(fmt.Sprintf("  Build:     %s\n", resp.BuildID))
	b.WriteString(fmt.Sprintf("  Variables: %d\n", resp.Variables))
	b.WriteString(fmt.Sprintf("  Codings:   %d\n", resp.Codings))
	return b.String()
}

func formatVarsHuman(resp *VarsResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d variables\n\n", len(resp.Variables)))
	for _, v := range resp.Variables {
		marker := " "
		if v.Coded {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %-20s %s\n", marker, v.Varname, v.Description))
	}
	b.WriteString("\n* has a coding\n")
	return b.String()
}

func formatCodingsHuman(resp *CodingsResponse) string {
	var b strings.Builder
	for _, c := range resp.Codings {
		b.WriteString(c.Varname + ":\n")
		if len(c.Labels) == 0 {
			b.WriteString("  (no coding)\n")
			continue
		}
		for _, label := range c.Labels {
			b.WriteString("  " + label + "\n")
		}
	}
	return b.String()
}

func formatDescribeHuman(resp *DescribeResponse) string {
	var b strings.Builder
	for _, r := range resp.Results {
		b.WriteString(r.Description + "\n")
	}
	return b.String()
}

func formatTabulateHuman(resp *TabulateResponse) string {
	var b strings.Builder
	b.WriteString(resp.Title + "\n")
	b.WriteString(strings.Repeat("-", len(resp.Title)) + "\n")
	if len(resp.Categories) == 0 {
		if len(resp.Values) > 0 {
			b.WriteString(fmt.Sprintf("%v\n", resp.Values[0]))
		}
		return b.String()
	}
	width := 0
	for _, c := range resp.Categories {
		if len(c) > width {
			width = len(c)
		}
	}
	for i, c := range resp.Categories {
		b.WriteString(fmt.Sprintf("%-*s  %v\n", width, c, resp.Values[i]))
	}
	return b.String()
}
