package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseBackground parses a "#rrggbb" hex string into an opaque color.
func ParseBackground(value string) (color.RGBA, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "#") || len(trimmed) != 7 {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", value)
	}
	parsed, err := strconv.ParseUint(trimmed[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", value)
	}
	return color.RGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 0xff,
	}, nil
}
