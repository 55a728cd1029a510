package figtext

import (
	"errors"
	"testing"
)

func TestLayoutConstants(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   uint32
	}{
		{"RuleEqualChar", RuleEqualChar, 1},
		{"RuleUnderscore", RuleUnderscore, 2},
		{"RuleHierarchy", RuleHierarchy, 4},
		{"RuleOppositePair", RuleOppositePair, 8},
		{"RuleBigX", RuleBigX, 16},
		{"RuleHardblank", RuleHardblank, 32},
		{"FitKerning", FitKerning, 64},
		{"FitSmushing", FitSmushing, 128},
		{"FitUniversal", FitUniversal, 0},
	}
	for _, tt := range tests {
		if uint32(tt.layout) != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.layout, tt.want)
		}
	}
}

func TestLayoutAccessors(t *testing.T) {
	// standard.flf full_layout: smushing with rules 1-4 plus vertical bits
	l := Layout(24463)

	if got := l.Horizontal(); got != FitSmushing|RuleEqualChar|RuleUnderscore|RuleHierarchy|RuleOppositePair {
		t.Errorf("Horizontal() = %v", got)
	}
	if got := l.FittingMode(); got != FitSmushing {
		t.Errorf("FittingMode() = %v, want FitSmushing", got)
	}
	if got := l.Rules(); got != RuleEqualChar|RuleUnderscore|RuleHierarchy|RuleOppositePair {
		t.Errorf("Rules() = %v", got)
	}
	if !l.HasRule(RuleHierarchy) || l.HasRule(RuleBigX) {
		t.Error("HasRule() disagrees with the bitmask")
	}
	if l.HasRule(FitSmushing) {
		t.Error("HasRule() should only answer for rule bits")
	}
	if l.IsUniversal() || !FitUniversal.IsUniversal() {
		t.Error("IsUniversal() wrong")
	}
	// Vertical bits alone leave the horizontal layout universal
	if !Layout(0x0100).IsUniversal() || !Layout(0x6000).IsUniversal() {
		t.Error("IsUniversal() should ignore vertical bits")
	}
	if Layout(0x0140).IsUniversal() {
		t.Error("IsUniversal() true for a kerning layout with vertical bits")
	}
}

func TestLayoutString(t *testing.T) {
	tests := []struct {
		layout Layout
		want   string
	}{
		{FitUniversal, "FitUniversal"},
		{FitKerning, "FitKerning"},
		{FitSmushing | RuleEqualChar | RuleBigX, "FitSmushing|RuleEqualChar|RuleBigX"},
		{RuleHardblank, "RuleHardblank"},
		{Layout(24463), "FitSmushing|RuleEqualChar|RuleUnderscore|RuleHierarchy|RuleOppositePair|0x5F00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.layout.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			back, err := ParseLayout(tt.want)
			if err != nil {
				t.Fatalf("ParseLayout(%q) error = %v", tt.want, err)
			}
			if back != tt.layout {
				t.Errorf("ParseLayout(%q) = %d, want %d", tt.want, back, tt.layout)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{in: "0", want: FitUniversal},
		{in: "143", want: FitSmushing | RuleEqualChar | RuleUnderscore | RuleHierarchy | RuleOppositePair},
		{in: "0x40", want: FitKerning},
		{in: "kern", want: FitKerning},
		{in: "universal", want: FitUniversal},
		{in: "overlap", want: FitUniversal},
		{in: "smush,equal,bigx", want: FitSmushing | RuleEqualChar | RuleBigX},
		{in: " Smush | Pair ", want: FitSmushing | RuleOppositePair},
		{in: "hardblank|underscore|hierarchy", want: RuleHardblank | RuleUnderscore | RuleHierarchy},
		{in: "", wantErr: true},
		{in: "sideways", wantErr: true},
		{in: "smush|", want: FitSmushing},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayout(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLayout) {
					t.Errorf("ParseLayout(%q) error = %v, want ErrInvalidLayout", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayout(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
