package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatResponseJSON(t *testing.T) {
	resp := &BuildResponse{
		Dataset:   "base",
		BuildID:   "b1",
		Variables: 5,
		Codings:   2,
	}

	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}

	var decoded BuildResponse
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded != *resp {
		t.Errorf("round-trip = %+v, want %+v", decoded, *resp)
	}
}

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(&BuildResponse{}, OutputFormat("xml")); err == nil {
		t.Error("FormatResponse() with unsupported format should return error")
	}
}

func TestFormatBuildHuman(t *testing.T) {
	out := formatBuildHuman(&BuildResponse{
		Dataset:   "base",
		BuildID:   "b1",
		Variables: 5,
		Codings:   2,
	})

	for _, want := range []string{"base", "b1", "Variables: 5", "Codings:   2"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatBuildHuman() = %q, want to contain %q", out, want)
		}
	}
}

func TestFormatVarsHuman(t *testing.T) {
	out := formatVarsHuman(&VarsResponse{
		Variables: []VarEntry{
			{Varname: "SESBTH", Description: "Socio-economic status at birth", Coded: true},
			{Varname: "gptotvis", Description: "Total GP visits"},
		},
	})

	if !strings.Contains(out, "2 variables") {
		t.Errorf("formatVarsHuman() = %q, want variable count", out)
	}
	if !strings.Contains(out, "* SESBTH") {
		t.Errorf("formatVarsHuman() = %q, want coded marker on SESBTH", out)
	}
	if strings.Contains(out, "* gptotvis") {
		t.Errorf("formatVarsHuman() = %q, gptotvis should not carry a coded marker", out)
	}
}

func TestFormatCodingsHuman(t *testing.T) {
	out := formatCodingsHuman(&CodingsResponse{
		Codings: []CodingEntry{
			{Varname: "z1singleLvl1", Labels: []string{"Not single", "Single"}},
			{Varname: "kids"},
		},
	})

	if !strings.Contains(out, "Not single") || !strings.Contains(out, "Single") {
		t.Errorf("formatCodingsHuman() = %q, want both labels", out)
	}
	if !strings.Contains(out, "(no coding)") {
		t.Errorf("formatCodingsHuman() = %q, want no-coding marker for kids", out)
	}
}

func TestFormatTabulateHuman(t *testing.T) {
	tests := []struct {
		name string
		resp *TabulateResponse
		want []string
	}{
		{
			name: "categorical summary",
			resp: &TabulateResponse{
				Title:      "Single adult by Ethnicity",
				Categories: []string{"European No", "Maori Yes"},
				Values:     []float64{10, 4},
			},
			want: []string{"Single adult by Ethnicity", "European No", "Maori Yes", "10", "4"},
		},
		{
			name: "scalar summary",
			resp: &TabulateResponse{
				Title:  "Total GP visits scenario",
				Values: []float64{3.5},
			},
			want: []string{"Total GP visits scenario", "3.5"},
		},
		{
			name: "empty table",
			resp: &TabulateResponse{
				Title: "Children in family",
			},
			want: []string{"Children in family"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatTabulateHuman(tt.resp)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("formatTabulateHuman() = %q, want to contain %q", out, want)
				}
			}
		})
	}
}
