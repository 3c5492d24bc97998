package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ShapeType identifies one of the six supported shape kinds.
type ShapeType string

const (
	ShapeL ShapeType = "L"
	ShapeJ ShapeType = "J"
	ShapeT ShapeType = "T"
	ShapeO ShapeType = "O"
	ShapeZ ShapeType = "Z"
	ShapeI ShapeType = "I"
)

func (t ShapeType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known shape types.
func (t ShapeType) Valid() bool {
	switch t {
	case ShapeL, ShapeJ, ShapeT, ShapeO, ShapeZ, ShapeI:
		return true
	}
	return false
}

// ParseShapeType converts a single-letter tag (any case) to a ShapeType.
func ParseShapeType(s string) (ShapeType, error) {
	t := ShapeType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown shape type %q", s)
	}
	return t, nil
}

// Block is one unit-block offset of a shape, in cells.
// Z is the row (depth) offset, X the column (width) offset and Y the level.
type Block struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Configuration is the ordered list of block offsets that make up a shape.
type Configuration []Block

// Clone returns an independent copy of the configuration.
func (c Configuration) Clone() Configuration {
	if c == nil {
		return nil
	}
	cp := make(Configuration, len(c))
	copy(cp, c)
	return cp
}

// Equal reports whether both configurations hold the same blocks in the same order.
func (c Configuration) Equal(other Configuration) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// SameSet reports whether both configurations cover the same offsets, ignoring order.
func (c Configuration) SameSet(other Configuration) bool {
	if len(c) != len(other) {
		return false
	}
	seen := make(map[Block]int, len(c))
	for _, b := range c {
		seen[b]++
	}
	for _, b := range other {
		if seen[b] == 0 {
			return false
		}
		seen[b]--
	}
	return true
}

// HasDuplicates reports whether any offset appears more than once.
func (c Configuration) HasDuplicates() bool {
	seen := make(map[Block]struct{}, len(c))
	for _, b := range c {
		if _, ok := seen[b]; ok {
			return true
		}
		seen[b] = struct{}{}
	}
	return false
}

// MinY returns the lowest level in the configuration, or 0 when empty.
func (c Configuration) MinY() int {
	if len(c) == 0 {
		return 0
	}
	m := c[0].Y
	for _, b := range c[1:] {
		if b.Y < m {
			m = b.Y
		}
	}
	return m
}

// MaxX returns the largest column offset, or 0 when empty.
func (c Configuration) MaxX() int {
	m := 0
	for i, b := range c {
		if i == 0 || b.X > m {
			m = b.X
		}
	}
	return m
}

// MaxY returns the highest level, or 0 when empty.
func (c Configuration) MaxY() int {
	m := 0
	for i, b := range c {
		if i == 0 || b.Y > m {
			m = b.Y
		}
	}
	return m
}

// Center returns the mean block offset as (z, x, y).
func (c Configuration) Center() (z, x, y float64) {
	if len(c) == 0 {
		return 0, 0, 0
	}
	for _, b := range c {
		z += float64(b.Z)
		x += float64(b.X)
		y += float64(b.Y)
	}
	n := float64(len(c))
	return z / n, x / n, y / n
}

// Vec3 is a world-space position in the same unit as the cell size.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// PlacedShape is a shape instance living in the bay.
type PlacedShape struct {
	ID            string        `json:"id"`
	Type          ShapeType     `json:"type"`
	Configuration Configuration `json:"configuration"`
	Position      Vec3          `json:"position"` // world anchor
	Rotation      int           `json:"rotation"` // degrees, one of 0/90/180/270
	Color         Color         `json:"color"`
}

// NewPlacedShape creates a shape instance with a fresh short ID.
func NewPlacedShape(t ShapeType, cfg Configuration, pos Vec3) PlacedShape {
	return PlacedShape{
		ID:            uuid.New().String()[:8],
		Type:          t,
		Configuration: cfg.Clone(),
		Position:      pos,
		Rotation:      0,
		Color:         DefaultShapeColor,
	}
}

// Clone returns a copy that shares no configuration storage with s.
func (s PlacedShape) Clone() PlacedShape {
	s.Configuration = s.Configuration.Clone()
	return s
}

// ValidRotation reports whether deg is one of the four supported quarter turns.
func ValidRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// Direction is a unit move along one world axis.
type Direction string

const (
	DirLeft     Direction = "left"
	DirRight    Direction = "right"
	DirUp       Direction = "up"
	DirDown     Direction = "down"
	DirForward  Direction = "forward"
	DirBackward Direction = "backward"
)

// Directions lists every supported direction.
var Directions = []Direction{DirLeft, DirRight, DirUp, DirDown, DirForward, DirBackward}

// ParseDirection converts a direction token (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if _, _, _, ok := d.delta(); !ok {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// Delta returns the unit step for the direction in (x, y, z).
// Unknown directions yield a zero step.
func (d Direction) Delta() (dx, dy, dz int) {
	dx, dy, dz, _ = d.delta()
	return dx, dy, dz
}

func (d Direction) delta() (dx, dy, dz int, ok bool) {
	switch d {
	case DirLeft:
		return -1, 0, 0, true
	case DirRight:
		return 1, 0, 0, true
	case DirUp:
		return 0, 1, 0, true
	case DirDown:
		return 0, -1, 0, true
	case DirForward:
		return 0, 0, 1, true
	case DirBackward:
		return 0, 0, -1, true
	}
	return 0, 0, 0, false
}
