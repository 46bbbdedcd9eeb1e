package dictionary

import (
	"fmt"
)

// CodePair is one (code, label) entry of a coding, in source order.
type CodePair struct {
	Code  string
	Label string
}

// CodeTable is an immutable ordered mapping from coded value to category
// label for a single variable. Order is caller-supplied and by convention
// follows ascending numeric code order; this is not enforced.
type CodeTable struct {
	varname string
	pairs   []CodePair
	index   map[string]int
}

// NewCodeTable builds the CodeTable annotating varname. Codes must be
// unique within a table.
func NewCodeTable(varname string, pairs []CodePair) (*CodeTable, error) {
	index := make(map[string]int, len(pairs))
	for i, p := range pairs {
		if _, dup := index[p.Code]; dup {
			return nil, fmt.Errorf("duplicate code %q in coding for %q", p.Code, varname)
		}
		index[p.Code] = i
	}
	return &CodeTable{
		varname: varname,
		pairs:   append([]CodePair(nil), pairs...),
		index:   index,
	}, nil
}

// Varname returns the variable this table annotates.
func (t *CodeTable) Varname() string { return t.varname }

// Len returns the number of entries.
func (t *CodeTable) Len() int { return len(t.pairs) }

// Lookup returns the label for code, or ok=false when the code has no entry.
func (t *CodeTable) Lookup(code string) (string, bool) {
	i, ok := t.index[code]
	if !ok {
		return "", false
	}
	return t.pairs[i].Label, true
}

// Labels returns the category labels in table order.
func (t *CodeTable) Labels() []string {
	labels := make([]string, len(t.pairs))
	for i, p := range t.pairs {
		labels[i] = p.Label
	}
	return labels
}

// Pairs returns a copy of the (code, label) entries in table order.
func (t *CodeTable) Pairs() []CodePair {
	return append([]CodePair(nil), t.pairs...)
}

// Reverse returns a new table with codes and labels swapped, mapping each
// label back to its code. Labels must be unique for the result to be valid.
func (t *CodeTable) Reverse() (*CodeTable, error) {
	swapped := make([]CodePair, len(t.pairs))
	for i, p := range t.pairs {
		swapped[i] = CodePair{Code: p.Label, Label: p.Code}
	}
	return NewCodeTable(t.varname, swapped)
}
