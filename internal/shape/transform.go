package shape

import "github.com/piwi3910/shelfpack/internal/model"

// NormalizeDegrees reduces any angle into [0, 360).
func NormalizeDegrees(deg int) int {
	return ((deg % 360) + 360) % 360
}

// Rotate returns the configuration of t turned by deg degrees. The result is
// always derived from the base layout so repeated turns never accumulate
// error. Angles that are not a quarter turn return the base layout.
//
// The turn keeps z and swaps the roles of x and y:
//
//	 90: (z, y, maxX-x)
//	180: (z, maxX-x, maxY-y)
//	270: (z, maxY-y, x)
func Rotate(t model.ShapeType, deg int) model.Configuration {
	base := ConfigurationFor(t)
	if len(base) == 0 {
		return base
	}
	maxX, maxY := base.MaxX(), base.MaxY()

	var out model.Configuration
	switch NormalizeDegrees(deg) {
	case 0:
		return base
	case 90:
		out = mapBlocks(base, func(b model.Block) model.Block {
			return model.Block{Z: b.Z, X: b.Y, Y: maxX - b.X}
		})
	case 180:
		out = mapBlocks(base, func(b model.Block) model.Block {
			return model.Block{Z: b.Z, X: maxX - b.X, Y: maxY - b.Y}
		})
	case 270:
		out = mapBlocks(base, func(b model.Block) model.Block {
			return model.Block{Z: b.Z, X: maxY - b.Y, Y: b.X}
		})
	default:
		return base
	}
	return Normalize(out)
}

// Normalize lifts a configuration so its lowest block sits on level 0.
// Configurations already on or above the floor are returned unchanged.
func Normalize(cfg model.Configuration) model.Configuration {
	out := cfg.Clone()
	minY := out.MinY()
	if minY >= 0 {
		return out
	}
	for i := range out {
		out[i].Y -= minY
	}
	return out
}

func mapBlocks(cfg model.Configuration, fn func(model.Block) model.Block) model.Configuration {
	out := make(model.Configuration, len(cfg))
	for i, b := range cfg {
		out[i] = fn(b)
	}
	return out
}
