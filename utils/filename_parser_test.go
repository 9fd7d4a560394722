package utils

import "testing"

func TestParseVariantFileName(t *testing.T) {
	tests := []struct {
		file      string
		productID int
		color     string
	}{
		{"12_black.png", 12, "black"},
		{"3_Rose-Gold_2.JPG", 3, "Rose Gold"},
		{"7_navy_blue.jpeg", 7, "navy blue"},
		{"7_navy_blue_10.jpg", 7, "navy blue"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := ParseVariantFileName(tt.file)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ProductID != tt.productID || got.Color != tt.color || got.FileName != tt.file {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestParseVariantFileNameErrors(t *testing.T) {
	for _, file := range []string{"black.png", "x_black.png", "0_black.png", "12_black.gif", "12_.png", "12_--.png"} {
		if _, err := ParseVariantFileName(file); err == nil {
			t.Errorf("ParseVariantFileName(%q) should fail", file)
		}
	}
}
