// Package avatar synthesizes fallback profile avatars for accounts
// without an uploaded photo: a colored circle embedding the first
// letter of the display name. The color is a pure function of the name
// so every client renders the same identity the same way.
package avatar

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Palette is the fixed set of avatar background colors. Color selection
// indexes into it by hashing the display name.
var Palette = []string{
	"#8b5cf6", // purple
	"#3b82f6", // blue
	"#10b981", // green
	"#f59e0b", // orange
	"#ef4444", // red
	"#8b5cf6", // purple
	"#06b6d4", // cyan
	"#84cc16", // lime
	"#f97316", // orange
	"#ec4899", // pink
}

// Initial returns the first letter of the display name, uppercased.
// Blank names fall back to "U".
func Initial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(trimmed)[0]))
}

// ColorFor returns the palette color deterministically chosen for the
// given display name. The hash must stay byte-for-byte compatible with
// the product's web client (UTF-16 code units folded with
// h = c + (h<<5) - h) so the same account gets the same color in every
// client.
func ColorFor(name string) string {
	var hash int64
	fold := func(code int64) {
		// The web client only coerces to int32 at the shift, so the
		// accumulator itself must stay wider than 32 bits.
		shifted := int32(hash) << 5
		hash = code + int64(shifted) - hash
	}

	for _, r := range name {
		if r <= 0xFFFF {
			fold(int64(r))
			continue
		}
		// Runes beyond the BMP hash as their UTF-16 surrogate halves.
		r -= 0x10000
		fold(int64(0xD800 + (r >> 10)))
		fold(int64(0xDC00 + (r & 0x3FF)))
	}

	if hash < 0 {
		hash = -hash
	}
	return Palette[int(hash%int64(len(Palette)))]
}

// DataURI renders a circular SVG avatar with the given initial and
// color at size pixels, encoded as a data URI suitable for an <img>
// source or an exported profile image.
func DataURI(initial, color string, size int) string {
	fontSize := size / 2
	svg := fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+
			`<circle cx="%d" cy="%d" r="%d" fill="%s"/>`+
			`<text x="%d" y="%d" font-family="Inter, Arial, sans-serif" font-size="%d" `+
			`font-weight="700" fill="white" text-anchor="middle" dominant-baseline="middle">%s</text>`+
			`</svg>`,
		size, size, size, size,
		size/2, size/2, size/2, color,
		size/2, size/2, fontSize, initial,
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// ForName is the convenience composition used by the profile view:
// initial, color, and a rendered data URI for the given display name.
func ForName(name string, size int) (initial, color, uri string) {
	initial = Initial(name)
	color = ColorFor(name)
	uri = DataURI(initial, color, size)
	return initial, color, uri
}
