// Package dictionary resolves internal variable names and coded values to
// the text a human should see. A Dictionary owns the variable-name to
// description mapping and a CodeTable per coded variable, both built once
// from the study's source tables and immutable afterwards, so a single
// instance may be shared by concurrent callers without synchronization.
package dictionary

import (
	"fmt"
	"sort"
	"strings"
)

// Missing marks a coded value with no entry in its variable's CodeTable.
// The no-match state propagates instead of raising so downstream consumers
// can treat it like any other category label.
const Missing = "NA"

// DefaultBaselineWeighting is the weighting tag treated as baseline. A
// result weighted to the baseline gets no scenario suffix.
const DefaultBaselineWeighting = "weightBase"

// DescriptionRow is one row of the descriptions source table.
type DescriptionRow struct {
	Varname     string
	Description string
}

// CodingRow is one row of the codings source table.
type CodingRow struct {
	Varname string
	Expr    string
}

// EvaluateFunc evaluates a coding expression into ordered (code, label)
// pairs, preserving the order given in the expression.
type EvaluateFunc func(expr string) ([]CodePair, error)

// Dictionary maps variable names to description strings and to their
// CodeTables. Variables absent from the code tables are continuous or raw
// identifiers; matching them falls back to identity.
type Dictionary struct {
	descriptions map[string]string
	codeTables   map[string]*CodeTable
	baseline     string
}

// New builds a Dictionary from the descriptions table and the optional
// codings table. Rows with a blank Varname are discarded from both tables,
// and codings rows with a blank expression are discarded, so trailing
// blank rows in source files are harmless. Each retained expression is
// handed to eval and the resulting pairs wrapped as that variable's
// CodeTable. An empty codings slice leaves the dictionary without code
// tables.
func New(descriptions []DescriptionRow, codings []CodingRow, eval EvaluateFunc) (*Dictionary, error) {
	d := &Dictionary{
		descriptions: make(map[string]string, len(descriptions)),
		codeTables:   make(map[string]*CodeTable, len(codings)),
		baseline:     DefaultBaselineWeighting,
	}
	for _, row := range descriptions {
		if row.Varname == "" {
			continue
		}
		d.descriptions[row.Varname] = row.Description
	}
	for _, row := range codings {
		if row.Varname == "" || row.Expr == "" {
			continue
		}
		pairs, err := eval(row.Expr)
		if err != nil {
			return nil, fmt.Errorf("coding for %q: %w", row.Varname, err)
		}
		table, err := NewCodeTable(row.Varname, pairs)
		if err != nil {
			return nil, err
		}
		d.codeTables[row.Varname] = table
	}
	return d, nil
}

// FromParts assembles a Dictionary from already-materialized state, e.g.
// when loading a compiled dictionary from the store.
func FromParts(descriptions map[string]string, tables []*CodeTable) *Dictionary {
	d := &Dictionary{
		descriptions: make(map[string]string, len(descriptions)),
		codeTables:   make(map[string]*CodeTable, len(tables)),
		baseline:     DefaultBaselineWeighting,
	}
	for varname, desc := range descriptions {
		if varname == "" {
			continue
		}
		d.descriptions[varname] = desc
	}
	for _, t := range tables {
		d.codeTables[t.Varname()] = t
	}
	return d
}

// WithBaselineWeighting returns a copy of d treating tag as the baseline
// weighting. An empty tag keeps the default.
func (d *Dictionary) WithBaselineWeighting(tag string) *Dictionary {
	if tag == "" {
		return d
	}
	copied := *d
	copied.baseline = tag
	return &copied
}

// BaselineWeighting returns the weighting tag treated as baseline.
func (d *Dictionary) BaselineWeighting() string { return d.baseline }

// Description returns the stored description for varname.
func (d *Dictionary) Description(varname string) (string, bool) {
	desc, ok := d.descriptions[varname]
	return desc, ok
}

// CodeTable returns the CodeTable for varname, or ok=false when the
// variable has no categorical coding.
func (d *Dictionary) CodeTable(varname string) (*CodeTable, bool) {
	t, ok := d.codeTables[varname]
	return t, ok
}

// Varnames returns every variable with a description, sorted.
func (d *Dictionary) Varnames() []string {
	names := make([]string, 0, len(d.descriptions))
	for name := range d.descriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodedVarnames returns every variable with a CodeTable, sorted.
func (d *Dictionary) CodedVarnames() []string {
	names := make([]string, 0, len(d.codeTables))
	for name := range d.codeTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MatchCodes substitutes each coded value with its label from varname's
// CodeTable. With no varname, or no CodeTable for it, the values pass
// through unchanged, so coded and uncoded variables can be treated
// identically by callers. A value with no entry yields Missing.
func (d *Dictionary) MatchCodes(values []string, varname string) []string {
	if varname == "" {
		return values
	}
	table, ok := d.codeTables[varname]
	if !ok {
		return values
	}
	matched := make([]string, len(values))
	for i, v := range values {
		matched[i] = lookupOrMissing(table, v)
	}
	return matched
}

// matchCode resolves a single code with the same fallback rules as
// MatchCodes.
func (d *Dictionary) matchCode(value, varname string) string {
	if varname == "" {
		return value
	}
	table, ok := d.codeTables[varname]
	if !ok {
		return value
	}
	return lookupOrMissing(table, value)
}

func lookupOrMissing(table *CodeTable, value string) string {
	if label, ok := table.Lookup(value); ok {
		return label
	}
	return Missing
}

// flattenedCode is a composite category parsed from the flattened wire
// format: the code of the variable the value was cross-tabulated by, and
// the variable's own code.
type flattenedCode struct {
	groupCode string
	varCode   string
}

// parseFlattenedCode splits a composite entry on its first whitespace. The
// group token is a single whitespace-free token by convention; everything
// after the first space belongs to the variable side, which allows spaced
// values there only.
func parseFlattenedCode(raw string) (flattenedCode, bool) {
	group, rest, found := strings.Cut(raw, " ")
	if !found || group == "" || rest == "" {
		return flattenedCode{}, false
	}
	return flattenedCode{groupCode: group, varCode: rest}, true
}

// MatchFlattenedCodes resolves composite "<group> <code>" categories. With
// no grouping tag every entry is a plain code for varname. With a grouping
// tag each entry must split into two tokens: the group token resolves
// against grpbyTag's CodeTable and the variable token against varname's,
// joined with a single space, group label first.
func (d *Dictionary) MatchFlattenedCodes(flat []string, varname, grpbyTag string) ([]string, error) {
	if grpbyTag == "" {
		return d.MatchCodes(flat, varname), nil
	}
	matched := make([]string, len(flat))
	for i, raw := range flat {
		fc, ok := parseFlattenedCode(raw)
		if !ok {
			return nil, &MalformedFlattenedCodeError{Raw: raw, Varname: varname, GrpbyTag: grpbyTag}
		}
		matched[i] = d.matchCode(fc.groupCode, grpbyTag) + " " + d.matchCode(fc.varCode, varname)
	}
	return matched, nil
}

// CodingLabels returns, per variable, the ordered category labels of its
// CodeTable. Variables without a CodeTable are absent from the returned
// map. Batching the lookups lets callers pre-fetch legend labels for a
// panel of variables in one call.
func (d *Dictionary) CodingLabels(varnames []string) map[string][]string {
	labels := make(map[string][]string, len(varnames))
	for _, v := range varnames {
		if table, ok := d.codeTables[v]; ok {
			labels[v] = table.Labels()
		}
	}
	return labels
}
