package main

import (
	"reflect"
	"testing"

	"github.com/tukushan/simario/internal/codings"
	"github.com/tukushan/simario/internal/dictionary"
	"github.com/tukushan/simario/internal/results"
)

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dict, err := dictionary.New(
		[]dictionary.DescriptionRow{
			{Varname: "z1singleLvl1", Description: "Single adult"},
			{Varname: "r1stchildethn", Description: "Ethnicity"},
		},
		[]dictionary.CodingRow{
			{Varname: "z1singleLvl1", Expr: `c("Not single"=0, "Single"=1)`},
			{Varname: "r1stchildethn", Expr: `c("European"=1, "Maori"=2, "Pacific"=3)`},
		},
		codings.Evaluate,
	)
	if err != nil {
		t.Fatalf("dictionary.New() error = %v", err)
	}
	return dict
}

func TestLabelCategories(t *testing.T) {
	dict := testDict(t)

	tests := []struct {
		name  string
		table *results.Table
		stat  string
		want  []string
	}{
		{
			name: "freq labels coded values",
			table: &results.Table{
				Meta: &results.Meta{Varname: "z1singleLvl1"},
				Dims: []results.Dimension{{Name: "z1singleLvl1", Labels: []string{"0", "1"}}},
			},
			stat: "freq",
			want: []string{"Not single", "Single"},
		},
		{
			name: "grouped freq labels flattened codes",
			table: &results.Table{
				Meta: &results.Meta{Varname: "z1singleLvl1", GrpbyTag: "r1stchildethn"},
				Dims: []results.Dimension{{Name: "z1singleLvl1", Labels: []string{"1 0", "2 1"}}},
			},
			stat: "freq",
			want: []string{"European Not single", "Maori Single"},
		},
		{
			name: "grouped mean labels group codes",
			table: &results.Table{
				Meta: &results.Meta{Varname: "gptotvis", GrpbyTag: "r1stchildethn"},
				Dims: []results.Dimension{{Name: "r1stchildethn", Labels: []string{"1", "2"}}},
			},
			stat: "mean",
			want: []string{"European", "Maori"},
		},
		{
			name: "quantile labels pass through",
			table: &results.Table{
				Meta: &results.Meta{Varname: "gptotvis"},
				Dims: []results.Dimension{{Name: "gptotvis", Labels: []string{"25%", "50%", "75%"}}},
			},
			stat: "quantile",
			want: []string{"25%", "50%", "75%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := labelCategories(dict, tt.table, tt.stat)
			if err != nil {
				t.Fatalf("labelCategories() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("labelCategories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelCategoriesMalformedComposite(t *testing.T) {
	dict := testDict(t)
	table := &results.Table{
		Meta: &results.Meta{Varname: "z1singleLvl1", GrpbyTag: "r1stchildethn"},
		Dims: []results.Dimension{{Name: "z1singleLvl1", Labels: []string{"10"}}},
	}

	if _, err := labelCategories(dict, table, "freq"); err == nil {
		t.Error("labelCategories() with a one-token composite should return error")
	}
}
