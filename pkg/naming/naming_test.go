package naming

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Token
	}{
		{"minimal", "chairLeg_branch_1", Token{Base: "chairLeg", Resource: "branch", Index: 1}},
		{"large index", "wall_frame_42", Token{Base: "wall", Resource: "frame", Index: 42}},
		{"noexport marker", "chairLeg_branch_2_noexport", Token{Base: "chairLeg", Resource: "branch", Index: 2, NoExport: true}},
		{"marker case-insensitive", "chairLeg_branch_2_NoExport", Token{Base: "chairLeg", Resource: "branch", Index: 2, NoExport: true}},
		{"duplicate suffix stripped", "chairLeg_branch_3.001", Token{Base: "chairLeg", Resource: "branch", Index: 3}},
		{"suffix with marker", "static_box_1_noexport.002", Token{Base: "static", Resource: "box", Index: 1, NoExport: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no separators", "chair"},
		{"two segments", "chair_frame"},
		{"empty base", "_frame_1"},
		{"empty resource", "chair__1"},
		{"non-integer index", "chair_frame_one"},
		{"zero index", "chair_frame_0"},
		{"negative index", "chair_frame_-1"},
		{"unknown marker", "chair_frame_1_hidden"},
		{"too many segments", "chair_frame_1_noexport_extra"},
		{"suffix only", ".001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.in)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %T, want *ParseError", tc.in, err)
			}
			if pe.Name != tc.in {
				t.Errorf("ParseError.Name = %q, want %q", pe.Name, tc.in)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	a, err := Parse("hut_static_7_noexport")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("hut_static_7_noexport")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated parses differ: %+v vs %+v", a, b)
	}
}

func TestPlaceholderName(t *testing.T) {
	tok := Token{Base: "chairLeg", Resource: "branch", Index: 9}
	if got := tok.PlaceholderName(1); got != "branch_1" {
		t.Errorf("PlaceholderName(1) = %q, want %q", got, "branch_1")
	}
}
