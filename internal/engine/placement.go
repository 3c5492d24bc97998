package engine

import (
	"math/rand"

	"github.com/piwi3910/shelfpack/internal/grid"
	"github.com/piwi3910/shelfpack/internal/model"
)

// PlacementConfig holds parameters for the free-cell search.
type PlacementConfig struct {
	MaxAttempts int  // random cells tried after the centre
	Exhaustive  bool // sweep every cell when the random attempts miss
}

// DefaultPlacementConfig returns the stock search parameters.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		MaxAttempts: 100,
		Exhaustive:  true,
	}
}

// Placer finds a free grid cell for a configuration.
type Placer struct {
	config PlacementConfig
	rng    *rand.Rand
}

// NewPlacer creates a placer whose random attempts come from seed.
func NewPlacer(config PlacementConfig, seed int64) *Placer {
	return &Placer{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Config returns the search parameters.
func (p *Placer) Config() PlacementConfig {
	return p.config
}

// Find returns a cell where cfg fits: the grid centre first, then random
// cells, then (if enabled) a row-major sweep. It does not modify g.
func (p *Placer) Find(g *grid.Grid, cfg model.Configuration) (row, col int, ok bool) {
	if g.Rows() == 0 || g.Cols() == 0 || len(cfg) == 0 {
		return 0, 0, false
	}

	row, col = g.Center()
	if g.CanPlace(row, col, cfg) {
		return row, col, true
	}

	for i := 0; i < p.config.MaxAttempts; i++ {
		row, col = p.rng.Intn(g.Rows()), p.rng.Intn(g.Cols())
		if g.CanPlace(row, col, cfg) {
			return row, col, true
		}
	}

	if !p.config.Exhaustive {
		return 0, 0, false
	}
	for row = 0; row < g.Rows(); row++ {
		for col = 0; col < g.Cols(); col++ {
			if g.CanPlace(row, col, cfg) {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}
