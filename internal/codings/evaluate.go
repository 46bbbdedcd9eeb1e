// Package codings evaluates the coding expressions found in the codings
// source table. Expressions follow the source tables' vector convention:
//
//	c("Professional"=1, "Clerical"=2, "Other"=3)
//
// The c(...) wrapper is optional, labels need not be quoted when they
// contain no comma or equals sign, and codes may be numeric or quoted
// strings. Entry order is preserved.
package codings

import (
	"fmt"
	"strings"

	"github.com/tukushan/simario/internal/dictionary"
)

// ParseError reports an expression fragment that could not be evaluated.
type ParseError struct {
	Expr     string
	Fragment string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot evaluate coding expression %q: %s at %q", e.Expr, e.Reason, e.Fragment)
}

// Evaluate parses expr into ordered (code, label) pairs. Its signature
// satisfies dictionary.EvaluateFunc.
func Evaluate(expr string) ([]dictionary.CodePair, error) {
	body := strings.TrimSpace(expr)
	if strings.HasPrefix(body, "c(") && strings.HasSuffix(body, ")") {
		body = body[2 : len(body)-1]
	}
	if strings.TrimSpace(body) == "" {
		return nil, &ParseError{Expr: expr, Fragment: body, Reason: "empty expression"}
	}

	entries := splitEntries(body)
	pairs := make([]dictionary.CodePair, 0, len(entries))
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			return nil, &ParseError{Expr: expr, Fragment: entry, Reason: "empty entry"}
		}
		label, code, err := parseEntry(trimmed)
		if err != nil {
			err.Expr = expr
			return nil, err
		}
		pairs = append(pairs, dictionary.CodePair{Code: code, Label: label})
	}
	return pairs, nil
}

// splitEntries splits on commas outside double quotes.
func splitEntries(body string) []string {
	var entries []string
	var b strings.Builder
	inQuote := false
	for _, r := range body {
		switch {
		case r == '"':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == ',' && !inQuote:
			entries = append(entries, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	entries = append(entries, b.String())
	return entries
}

// parseEntry parses a single `"label"=code` entry.
func parseEntry(entry string) (label, code string, err *ParseError) {
	eq := indexUnquoted(entry, '=')
	if eq < 0 {
		return "", "", &ParseError{Fragment: entry, Reason: "missing '='"}
	}

	label = unquote(strings.TrimSpace(entry[:eq]))
	code = unquote(strings.TrimSpace(entry[eq+1:]))

	if label == "" {
		return "", "", &ParseError{Fragment: entry, Reason: "empty label"}
	}
	if code == "" {
		return "", "", &ParseError{Fragment: entry, Reason: "empty code"}
	}
	return label, code, nil
}

// indexUnquoted returns the index of the first target rune outside double
// quotes, or -1.
func indexUnquoted(s string, target rune) int {
	inQuote := false
	for i, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == target && !inQuote:
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
