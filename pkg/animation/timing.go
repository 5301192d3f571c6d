package animation

import (
	"time"

	"github.com/matzehuels/hanoitower/pkg/geom"
)

// BaseDuration is how long a disk takes to travel one reference length.
const BaseDuration = 500 * time.Millisecond

// ClearanceHeight is the Y of a lifted disk's centre while it travels. Pegs
// stand on the board, so their tops are at PegHeight + BoardHeight/2; the
// disk's bottom edge stays DiskCount disk heights above that.
func ClearanceHeight(s Spatial) float64 {
	pegTop := s.PegHeight() + s.BoardHeight()/2
	return pegTop + s.DiskHeight()*(float64(s.DiskCount())+0.5)
}

// LandingHeight is the Y of a disk's centre when it lands on a peg that
// already holds count disks.
func LandingHeight(s Spatial, count int) float64 {
	return s.BoardHeight()/2 + s.DiskHeight()/2 + float64(count)*s.DiskHeight()
}

// ReferenceLength is the distance between the two outermost pegs.
func ReferenceLength(s Spatial) float64 {
	return geom.Distance(s.PegPosition(0), s.PegPosition(s.PegCount()-1))
}

// NormalizeDuration returns base scaled by the distance from a to b over ref.
// A non-positive ref is treated as 1 so the result stays finite.
func NormalizeDuration(a, b geom.Vec3, ref float64, base time.Duration) time.Duration {
	if ref <= 0 {
		ref = 1
	}
	return time.Duration(float64(base) * geom.Distance(a, b) / ref)
}
