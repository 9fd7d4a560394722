package utils

import (
	"regexp"
	"strings"

	"luxemarket/models"
)

// MapColorNameToHex maps legacy product color names to their hex codes
// Input is normalized to lowercase before mapping
// Returns models.DefaultColorHex when the name is unknown
func MapColorNameToHex(color string) string {
	hex, _ := LookupColorHex(color)
	return hex
}

// LookupColorHex is MapColorNameToHex that also reports whether the name was mapped
func LookupColorHex(color string) (string, bool) {
	colorLower := strings.ToLower(strings.TrimSpace(color))

	colorMap := map[string]string{
		"black":     "#000000",
		"white":     "#FFFFFF",
		"gray":      "#808080",
		"grey":      "#808080",
		"red":       "#DC2626",
		"pink":      "#EC4899",
		"orange":    "#F97316",
		"yellow":    "#FACC15",
		"green":     "#16A34A",
		"blue":      "#2563EB",
		"purple":    "#7C3AED",
		"brown":     "#92400E",
		"gold":      "#FFD700",
		"navy":      "#1E3A8A",
		"silver":    "#C0C0C0",
		"tan":       "#D2B48C",
		"rose gold": "#B76E79",
		"charcoal":  "#36454F",
		"beige":     "#F5F5DC",
		"cream":     "#FFFDD0",
	}

	if hex, exists := colorMap[colorLower]; exists {
		return hex, true
	}

	return models.DefaultColorHex, false
}

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeHex canonicalizes #RGB / #RRGGBB to uppercase #RRGGBB
func NormalizeHex(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if !hexColorRegex.MatchString(value) {
		return "", false
	}
	digits := strings.ToUpper(value[1:])
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	return "#" + digits, true
}

// NormalizeSize normalizes size values to standard format
// Small -> S, Medium -> M, Large -> L, X-Large -> XL
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	sizeAliases := map[string]string{
		"SMALL":       "S",
		"MEDIUM":      "M",
		"LARGE":       "L",
		"X-LARGE":     "XL",
		"EXTRA LARGE": "XL",
		"X-SMALL":     "XS",
		"EXTRA SMALL": "XS",
		"ONE SIZE":    "OS",
	}

	if alias, exists := sizeAliases[sizeUpper]; exists {
		return alias
	}
	return sizeUpper
}

// NormalizeSizes normalizes a product size list, dropping blanks and duplicates
// Input: []string{"small", " M", "S", ""}
// Returns: []string{"S", "M"}
func NormalizeSizes(sizes []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(sizes))

	for _, size := range sizes {
		normalized := NormalizeSize(size)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// DedupeStrings trims values and drops blanks and exact duplicates, keeping first occurrence order
func DedupeStrings(values []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
