package dictionary

import (
	"fmt"
	"sort"

	"github.com/tukushan/simario/internal/results"
)

// Describe produces the human-readable description for a computed result.
//
// The variable name comes from the result's metadata when present, else
// from structural fallbacks: the last named dimension of a labeled table,
// or the first element of a text sequence. The description is then
// composed as
//
//	description + grouping suffix + weighting suffix + set suffix
//
// where each suffix formats its own leading space or parentheses. Describe
// is a pure function of the result and the dictionary's immutable state.
func (d *Dictionary) Describe(result any) (string, error) {
	varname, meta, err := d.resolveVarname(result)
	if err != nil {
		return "", err
	}
	desc, ok := d.descriptions[varname]
	if !ok || desc == "" {
		return "", &UnknownVariableError{Varname: varname}
	}
	if meta == nil {
		return desc, nil
	}
	grouping, err := d.groupingSuffix(meta)
	if err != nil {
		return "", err
	}
	return desc + grouping + d.weightingSuffix(meta) + setSuffix(meta), nil
}

// resolveVarname picks the variable name from the closed set of result
// variants, in priority order. The returned meta is nil when the name came
// from a structural fallback.
func (d *Dictionary) resolveVarname(result any) (string, *results.Meta, error) {
	if tagged, ok := result.(results.Tagged); ok {
		if meta := tagged.ResultMeta(); meta != nil && meta.Varname != "" {
			return meta.Varname, meta, nil
		}
	}
	switch r := result.(type) {
	case *results.Table:
		// Last named dimension wins; empty dimension names are skipped.
		for i := len(r.Dims) - 1; i >= 0; i-- {
			if name := r.Dims[i].Name; name != "" {
				return name, nil, nil
			}
		}
	case []string:
		if len(r) > 0 {
			return r[0], nil, nil
		}
	}
	return "", nil, &VarnameResolutionError{Arg: fmt.Sprintf("%T", result)}
}

// groupingSuffix prefers an explicit grouping string; otherwise a grouping
// tag resolves recursively to "by <description of grpbyTag>".
func (d *Dictionary) groupingSuffix(meta *results.Meta) (string, error) {
	if meta.Grouping != "" {
		return " " + meta.Grouping, nil
	}
	if meta.GrpbyTag != "" {
		desc, err := d.Describe(&results.Scalar{Meta: &results.Meta{Varname: meta.GrpbyTag}})
		if err != nil {
			return "", err
		}
		return " by " + desc, nil
	}
	return "", nil
}

// weightingSuffix marks values weighted to anything but the baseline as
// scenario output.
func (d *Dictionary) weightingSuffix(meta *results.Meta) string {
	if meta.Weighting == "" || meta.Weighting == d.baseline {
		return ""
	}
	return " scenario"
}

func setSuffix(meta *results.Meta) string {
	if meta.Set == "" {
		return ""
	}
	return " (" + meta.Set + ")"
}

// OrderByDescription returns items reordered by ascending lexicographic
// order of their resolved descriptions; ties keep their original relative
// order. The first resolution failure aborts the whole batch so ordered
// output is always fully resolved or not produced at all.
func (d *Dictionary) OrderByDescription(items ...any) ([]any, error) {
	type keyed struct {
		item any
		desc string
	}
	ks := make([]keyed, len(items))
	for i, item := range items {
		desc, err := d.Describe(item)
		if err != nil {
			return nil, err
		}
		ks[i] = keyed{item: item, desc: desc}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].desc < ks[j].desc })
	ordered := make([]any, len(ks))
	for i, k := range ks {
		ordered[i] = k.item
	}
	return ordered, nil
}
