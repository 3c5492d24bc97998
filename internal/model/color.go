package model

import (
	"fmt"
	"strings"
)

// Color is an sRGB colour. It marshals as "#rrggbb".
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Palette entries offered by the colour buttons.
var (
	ColorRed   = Color{R: 0xff}
	ColorGreen = Color{G: 0xff}
	ColorBlue  = Color{B: 0xff}
	ColorWhite = Color{R: 0xff, G: 0xff, B: 0xff}
)

// DefaultShapeColor is assigned to every newly placed shape.
var DefaultShapeColor = ColorRed

// Palette is the ordered list of quick colours.
var Palette = []Color{ColorRed, ColorGreen, ColorBlue}

// ParseColor accepts "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	var c Color
	if _, err := fmt.Sscanf(strings.ToLower(h), "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// RGB returns the components as ints, the form fpdf expects.
func (c Color) RGB() (r, g, b int) {
	return int(c.R), int(c.G), int(c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WallColors holds the background colour used for each camera view.
type WallColors struct {
	Back  Color `json:"backColor"`
	Left  Color `json:"leftColor"`
	Front Color `json:"frontColor"`
}

// DefaultWallColors returns all-white walls.
func DefaultWallColors() WallColors {
	return WallColors{Back: ColorWhite, Left: ColorWhite, Front: ColorWhite}
}
