package scene

import (
	"github.com/matzehuels/hanoitower/pkg/errors"
)

// Config holds the scene dimensions. All lengths share one arbitrary unit.
type Config struct {
	DiskHeight   float64 `toml:"disk_height" json:"disk_height"`
	DiskRadius   float64 `toml:"disk_radius" json:"disk_radius"`
	RadiusStep   float64 `toml:"radius_step" json:"radius_step"`
	PegRadius    float64 `toml:"peg_radius" json:"peg_radius"`
	BoardPadding float64 `toml:"board_padding" json:"board_padding"`
	BoardHeight  float64 `toml:"board_height" json:"board_height"`
}

// DefaultConfig returns the dimensions of the original demo scene.
func DefaultConfig() Config {
	return Config{
		DiskHeight:   0.2,
		DiskRadius:   1.0,
		RadiusStep:   0.1,
		PegRadius:    0.1,
		BoardPadding: 0.8,
		BoardHeight:  0.2,
	}
}

// Validate checks that every dimension is usable.
func (c Config) Validate() error {
	switch {
	case c.DiskHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "disk height must be > 0, got %g", c.DiskHeight)
	case c.DiskRadius <= 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "disk radius must be > 0, got %g", c.DiskRadius)
	case c.RadiusStep < 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "radius step must be >= 0, got %g", c.RadiusStep)
	case c.PegRadius <= 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "peg radius must be > 0, got %g", c.PegRadius)
	case c.PegRadius >= c.DiskRadius:
		return errors.New(errors.ErrCodeInvalidConfiguration, "peg radius %g must be smaller than disk radius %g", c.PegRadius, c.DiskRadius)
	case c.BoardPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "board padding must be >= 0, got %g", c.BoardPadding)
	case c.BoardHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfiguration, "board height must be > 0, got %g", c.BoardHeight)
	}
	return nil
}

// effectiveStep shrinks RadiusStep when n disks would otherwise end up no
// wider than the peg.
func (c Config) effectiveStep(n int) float64 {
	if n <= 1 {
		return c.RadiusStep
	}
	if c.DiskRadius-c.RadiusStep*float64(n-1) > c.PegRadius {
		return c.RadiusStep
	}
	return (c.DiskRadius - c.PegRadius) / float64(n)
}
