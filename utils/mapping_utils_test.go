package utils

import (
	"reflect"
	"testing"

	"luxemarket/models"
)

func TestMapColorNameToHex(t *testing.T) {
	tests := map[string]string{
		"Black":       "#000000",
		" GOLD ":      "#FFD700",
		"rose gold":   "#B76E79",
		"ultraviolet": models.DefaultColorHex,
		"":            models.DefaultColorHex,
	}
	for in, want := range tests {
		if got := MapColorNameToHex(in); got != want {
			t.Errorf("MapColorNameToHex(%q) = %q, want %q", in, got, want)
		}
	}
	if _, ok := LookupColorHex("ultraviolet"); ok {
		t.Error("unknown color reported as mapped")
	}
}

func TestNormalizeSizes(t *testing.T) {
	got := NormalizeSizes([]string{"small", " m", "S", "", "x-large", "XL"})
	want := []string{"S", "M", "XL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeSizes = %v, want %v", got, want)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{"a.jpg", " b.jpg", "a.jpg", "", "b.jpg"})
	want := []string{"a.jpg", "b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeStrings = %v, want %v", got, want)
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#abc", "#AABBCC", true},
		{" #ffd700 ", "#FFD700", true},
		{"ffd700", "", false},
		{"#ggg", "", false},
		{"#12345", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeHex(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeHex(%q) = %q, %v", tt.in, got, ok)
		}
	}
}
