package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Bay applied to new sessions
	DefaultDimensions Dimensions `json:"default_dimensions"`
	DefaultWallColors WallColors `json:"default_wall_colors"`
	DefaultShapeColor Color      `json:"default_shape_color"`

	// Placement search
	PlacementAttempts   int   `json:"placement_attempts"`
	ExhaustivePlacement bool  `json:"exhaustive_placement"`
	Seed                int64 `json:"seed"` // 0 = time based

	// Application preferences
	AutoSave    bool     `json:"auto_save"`
	RecentFiles []string `json:"recent_files"`
	Theme       string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the stock bay and
// placement defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDimensions:   DefaultDimensions(),
		DefaultWallColors:   DefaultWallColors(),
		DefaultShapeColor:   DefaultShapeColor,
		PlacementAttempts:   100,
		ExhaustivePlacement: true,
		AutoSave:            true,
		RecentFiles:         []string{},
		Theme:               "system",
	}
}

// AddRecentFile moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentFile(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentFiles = out
}
