// Package results defines the result shapes produced by statistical
// operations and consumed by the dictionary resolver.
//
// The resolver recognizes a closed set of variants, checked in order:
//   - anything implementing Tagged whose Meta carries a variable name
//   - *Table, a labeled multi-dimensional container
//   - []string, a plain text sequence
package results

// Meta is the annotation a statistical operation attaches to its output.
// All fields are optional except Varname, which is required for direct
// metadata-based description resolution.
type Meta struct {
	// Varname is the internal variable name, e.g. "SESBTH" or "gptotvis".
	Varname string `json:"varname" yaml:"varname"`

	// Grouping is a free-text grouping suffix. When set it takes
	// precedence over GrpbyTag during description resolution.
	Grouping string `json:"grouping,omitempty" yaml:"grouping,omitempty"`

	// GrpbyTag names the variable this value was cross-tabulated by.
	GrpbyTag string `json:"grpbyTag,omitempty" yaml:"grpbyTag,omitempty"`

	// Set is a free-text qualifier rendered in parentheses.
	Set string `json:"set,omitempty" yaml:"set,omitempty"`

	// Weighting tags the weighting the value was computed under. The
	// baseline tag suppresses the scenario suffix.
	Weighting string `json:"weighting,omitempty" yaml:"weighting,omitempty"`
}

// Tagged is implemented by results that carry annotation metadata.
type Tagged interface {
	ResultMeta() *Meta
}

// Dimension is one named axis of a Table. The dimension of a categorical
// variable is named after the variable and labeled with its raw codes.
type Dimension struct {
	Name   string   `json:"name" yaml:"name"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Table is a labeled multi-dimensional container: one dimension for a
// vector, two for a matrix. Cells are stored row-major.
type Table struct {
	Meta  *Meta       `json:"meta,omitempty" yaml:"meta,omitempty"`
	Dims  []Dimension `json:"dims" yaml:"dims"`
	Cells []float64   `json:"cells" yaml:"cells"`
}

// ResultMeta implements Tagged. Tables built from structural data alone
// have no metadata and return nil.
func (t *Table) ResultMeta() *Meta { return t.Meta }

// Scalar is a single computed value with annotation metadata.
type Scalar struct {
	Meta  *Meta   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Value float64 `json:"value" yaml:"value"`
}

// ResultMeta implements Tagged.
func (s *Scalar) ResultMeta() *Meta { return s.Meta }
