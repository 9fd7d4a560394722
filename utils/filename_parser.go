package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"luxemarket/models"
)

var variantExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg)$`)

// ParseVariantFileName parses a variant image filename following the pattern:
// PRODUCTID_COLOR[_N].PNG
// Example: 12_rose-gold_2.jpg -> product 12, color "rose gold"
// Hyphens and underscores inside the color become spaces.
func ParseVariantFileName(filename string) (*models.VariantImageAsset, error) {
	if !variantExtRegex.MatchString(filename) {
		return nil, fmt.Errorf("invalid filename %q: expected .png, .jpg or .jpeg", filename)
	}
	nameWithoutExt := variantExtRegex.ReplaceAllString(filename, "")

	parts := strings.Split(nameWithoutExt, "_")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid filename format: expected PRODUCTID_COLOR, got %s", filename)
	}

	productID, err := strconv.Atoi(parts[0])
	if err != nil || productID <= 0 {
		return nil, fmt.Errorf("invalid product id in filename %s: %q", filename, parts[0])
	}

	colorParts := parts[1:]
	// Trailing numeric part is the image index
	if len(colorParts) > 1 {
		if _, err := strconv.Atoi(colorParts[len(colorParts)-1]); err == nil {
			colorParts = colorParts[:len(colorParts)-1]
		}
	}

	color := strings.Join(strings.Fields(strings.ReplaceAll(strings.Join(colorParts, " "), "-", " ")), " ")
	if color == "" {
		return nil, fmt.Errorf("invalid filename format: missing color in %s", filename)
	}

	return &models.VariantImageAsset{
		FileName:  filename,
		ProductID: productID,
		Color:     color,
	}, nil
}
