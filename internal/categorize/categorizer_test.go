package categorize

import (
	"reflect"
	"testing"
)

func TestCategorizeRuleMatch(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name     string
		in       Input
		wantPath []string
		wantLeg  string
	}{
		{
			name:     "english cookware keyword",
			in:       Input{Title: "Non-stick frying pan 28cm"},
			wantPath: []string{"home", "kitchen", "cookware"},
			wantLeg:  "home",
		},
		{
			name:     "bulgarian irrigation keyword",
			in:       Input{Title: "Градински маркуч 20м", CategoryText: "Градина"},
			wantPath: []string{"garden", "irrigation", "hoses"},
			wantLeg:  "garden",
		},
		{
			name:     "brand text contributes to the blob",
			in:       Input{Title: "Model X-200", Brand: "GrillMaster BBQ"},
			wantPath: []string{"garden", "bbq", "grills"},
			wantLeg:  "garden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Categorize(tt.in)
			if !reflect.DeepEqual(got.Path, tt.wantPath) {
				t.Errorf("Path = %v, want %v", got.Path, tt.wantPath)
			}
			if got.Legacy != tt.wantLeg {
				t.Errorf("Legacy = %q, want %q", got.Legacy, tt.wantLeg)
			}
		})
	}
}

func TestCategorizeWholeWordBeatsSubstring(t *testing.T) {
	c := New([]Rule{
		{Path: []string{"a"}, Keywords: []string{"pot"}, Weight: 0},
		{Path: []string{"b"}, Keywords: []string{"potato"}, Weight: 0},
	})

	// "potato" matches rule a only as a substring (1) but rule b as a whole
	// word plus substring (5)
	got := c.Categorize(Input{Title: "organic potato"})
	if !reflect.DeepEqual(got.Path, []string{"b"}) {
		t.Errorf("Path = %v, want [b]", got.Path)
	}
}

func TestCategorizeTieKeepsFirstRule(t *testing.T) {
	c := New([]Rule{
		{Path: []string{"first"}, Keywords: []string{"lamp"}, Weight: 3},
		{Path: []string{"second"}, Keywords: []string{"lamp"}, Weight: 3},
	})

	got := c.Categorize(Input{Title: "desk lamp"})
	if !reflect.DeepEqual(got.Path, []string{"first"}) {
		t.Errorf("tie must keep the first-declared rule, got %v", got.Path)
	}
}

func TestCategorizeWeightBreaksKeywordTie(t *testing.T) {
	c := New([]Rule{
		{Path: []string{"light"}, Keywords: []string{"lamp"}, Weight: 1},
		{Path: []string{"heavy"}, Keywords: []string{"lamp"}, Weight: 5},
	})

	got := c.Categorize(Input{Title: "desk lamp"})
	if !reflect.DeepEqual(got.Path, []string{"heavy"}) {
		t.Errorf("Path = %v, want [heavy]", got.Path)
	}
}

func TestCategorizeNoMatchLegacyFallback(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"garden token in category hint", Input{Title: "Something vague", CategoryText: "Garden misc"}, "garden"},
		{"kitchen token in title", Input{Title: "Izdelie za кухнята"}, "kitchen"},
		{"tools token", Input{Title: "Multi tool set PRO-X"}, "tools"},
		{"nothing matches", Input{Title: "Abstract item 9000"}, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Categorize(tt.in)
			if got.Legacy != tt.want {
				t.Errorf("Legacy = %q, want %q", got.Legacy, tt.want)
			}
		})
	}
}

func TestCategorizeDeterministic(t *testing.T) {
	c := New(DefaultRules())
	in := Input{Title: "Стоманен тиган wok 32см", Description: "за газови котлони"}

	first := c.Categorize(in)
	for i := 0; i < 10; i++ {
		again := c.Categorize(in)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("categorization not deterministic: %v vs %v", first, again)
		}
	}
}

func TestNormText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Premium" pan & lid!`, "premium pan lid"},
		{"  Маркуч   20м  ", "маркуч 20м"},
		{"wi-fi LED strip", "wi-fi led strip"},
	}

	for _, tt := range tests {
		if got := normText(tt.in); got != tt.want {
			t.Errorf("normText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
