package colors

import (
	"testing"

	"luxemarket/models"
)

func TestResolveTableRoundTrip(t *testing.T) {
	r := NewResolver()
	for _, c := range knownColors {
		if got := r.Resolve(c.name); got != c.hex {
			t.Errorf("Resolve(%q) = %q, want %q", c.name, got, c.hex)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"case insensitive", "  BLACK ", "#000000"},
		{"multi word", "Rose Gold", "#B76E79"},
		{"unknown", "Mystery Mauve", models.DefaultColorHex},
		{"empty", "", models.DefaultColorHex},
		{"short hex", "#fa0", "#FFAA00"},
		{"long hex", "#1e3a8a", "#1E3A8A"},
		{"bad hex", "#12", models.DefaultColorHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupReportsUnknown(t *testing.T) {
	r := NewResolver()
	if _, ok := r.Lookup("gold"); !ok {
		t.Error("gold should be known")
	}
	if hex, ok := r.Lookup("plaid"); ok || hex != models.DefaultColorHex {
		t.Errorf("Lookup(plaid) = %q, %v", hex, ok)
	}
}

func TestIsValidName(t *testing.T) {
	r := NewResolver()
	if r.IsValidName("   ") {
		t.Error("blank name should be invalid")
	}
	if !r.IsValidName("anything at all") {
		t.Error("unmapped names are still valid")
	}
}

func TestSuggest(t *testing.T) {
	r := NewResolver()

	got := r.Suggest("bla")
	if !contains(got, "black") {
		t.Errorf("Suggest(bla) = %v, want black included", got)
	}

	if got := r.Suggest(""); got == nil || len(got) != 0 {
		t.Errorf("Suggest(\"\") = %#v, want empty slice", got)
	}

	// "e" matches most of the table
	if got := r.Suggest("e"); len(got) != MaxSuggestions {
		t.Errorf("Suggest(e) returned %d names, want %d", len(got), MaxSuggestions)
	}

	got = r.Suggest("GR")
	if len(got) < 3 || got[0] != "gray" || got[1] != "grey" || got[2] != "green" {
		t.Errorf("Suggest(GR) = %v, want table order", got)
	}
}

func TestLearn(t *testing.T) {
	r := NewResolver()

	if r.Learn("black", "#111111") {
		t.Error("builtin names must not be overridable")
	}
	if r.Resolve("black") != "#000000" {
		t.Error("black changed after Learn")
	}

	if !r.Learn("Midnight Plum", "#4b0082") {
		t.Fatal("Learn rejected a custom name")
	}
	if got := r.Resolve("midnight plum"); got != "#4B0082" {
		t.Errorf("Resolve learned = %q", got)
	}
	if got := r.Suggest("plum"); len(got) != 1 || got[0] != "Midnight Plum" {
		t.Errorf("Suggest(plum) = %v", got)
	}

	r.Learn("midnight plum", "#222")
	if got := r.Resolve("Midnight Plum"); got != "#222222" {
		t.Errorf("relearned hex = %q", got)
	}
	if got := r.Suggest("plum"); len(got) != 1 {
		t.Errorf("relearn duplicated suggestion: %v", got)
	}

	if r.Learn("bad", "not-a-hex") {
		t.Error("Learn accepted a malformed hex")
	}
}

func TestUnlearn(t *testing.T) {
	r := NewResolver()
	r.Learn("Midnight Plum", "#4B0082")
	r.Learn("Sea Glass", "#A0D6B4")
	r.Learn("Plum Smoke", "#6E5160")

	if !r.Unlearn("MIDNIGHT PLUM") {
		t.Fatal("Unlearn missed a learned name")
	}
	if _, known := r.Lookup("midnight plum"); known {
		t.Error("name still known after Unlearn")
	}
	// later entries stay reachable after the removal shifts them
	if got := r.Resolve("plum smoke"); got != "#6E5160" {
		t.Errorf("Resolve(plum smoke) = %q", got)
	}
	if got := r.Suggest("plum"); len(got) != 1 || got[0] != "Plum Smoke" {
		t.Errorf("Suggest(plum) = %v", got)
	}

	if r.Unlearn("black") {
		t.Error("static table names cannot be unlearned")
	}
	if r.Resolve("black") != "#000000" {
		t.Error("black changed after Unlearn")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
