// Package color parses banner colors and derives darker variants from them.
package color

import (
	"encoding/hex"
	"fmt"

	"svgbanner/internal/domain"
)

// DarkeningFactor is applied to every channel of a background color to get
// the default foreground color.
const DarkeningFactor = 0.3

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses exactly six hex digits (any case) into an RGB value.
func ParseHex(s string) (RGB, error) {
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must be 6 hex digits", domain.ErrMalformedColor, s)
	}
	var b [3]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", domain.ErrMalformedColor, s, err)
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// Darken scales each channel by factor, truncating toward zero.
func Darken(c RGB, factor float64) RGB {
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Hex returns the color as six lowercase hex digits.
func (c RGB) Hex() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B})
}

// String returns the color as "#rrggbb".
func (c RGB) String() string {
	return "#" + c.Hex()
}
