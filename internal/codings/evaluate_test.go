package codings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tukushan/simario/internal/dictionary"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []dictionary.CodePair
	}{
		{
			name: "quoted labels with wrapper",
			expr: `c("Professional"=1, "Clerical"=2, "Semi-skilled"=3)`,
			want: []dictionary.CodePair{
				{Code: "1", Label: "Professional"},
				{Code: "2", Label: "Clerical"},
				{Code: "3", Label: "Semi-skilled"},
			},
		},
		{
			name: "unquoted labels without wrapper",
			expr: `No=0, Yes=1`,
			want: []dictionary.CodePair{
				{Code: "0", Label: "No"},
				{Code: "1", Label: "Yes"},
			},
		},
		{
			name: "quoted string codes",
			expr: `c("Male"="M", "Female"="F")`,
			want: []dictionary.CodePair{
				{Code: "M", Label: "Male"},
				{Code: "F", Label: "Female"},
			},
		},
		{
			name: "label containing comma and equals",
			expr: `c("Farm, forestry = primary"=6, "Other"=7)`,
			want: []dictionary.CodePair{
				{Code: "6", Label: "Farm, forestry = primary"},
				{Code: "7", Label: "Other"},
			},
		},
		{
			name: "single entry",
			expr: `c("Only"=1)`,
			want: []dictionary.CodePair{{Code: "1", Label: "Only"}},
		},
		{
			name: "declaration order preserved over numeric order",
			expr: `c("Third"=3, "First"=1, "Second"=2)`,
			want: []dictionary.CodePair{
				{Code: "3", Label: "Third"},
				{Code: "1", Label: "First"},
				{Code: "2", Label: "Second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty expression", expr: ""},
		{name: "empty wrapper", expr: "c()"},
		{name: "missing equals", expr: `c("Professional")`},
		{name: "empty label", expr: `c(""=1)`},
		{name: "empty code", expr: `c("Professional"=)`},
		{name: "trailing comma", expr: `c("Professional"=1,)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			if err == nil {
				t.Fatalf("Evaluate(%q) should fail", tt.expr)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error = %T, want *ParseError", err)
			}
		})
	}
}

func TestEvaluate_SatisfiesDictionaryContract(t *testing.T) {
	// Evaluate plugs straight into dictionary construction.
	d, err := dictionary.New(
		[]dictionary.DescriptionRow{{Varname: "SESBTH", Description: "Socio-economic status at birth"}},
		[]dictionary.CodingRow{{Varname: "SESBTH", Expr: `c("Professional"=1, "Clerical"=2)`}},
		Evaluate,
	)
	if err != nil {
		t.Fatalf("dictionary.New() error = %v", err)
	}

	got := d.MatchCodes([]string{"1", "2"}, "SESBTH")
	want := []string{"Professional", "Clerical"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchCodes() = %v, want %v", got, want)
	}
}
