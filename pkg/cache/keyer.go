package cache

import "fmt"

// Keyer derives cache keys from the inputs of each stage.
type Keyer interface {
	// MovesKey identifies the move list for a disk count.
	MovesKey(disks int) string
	// TimelineKey identifies a recorded timeline.
	TimelineKey(disks int, opts TimelineKeyOpts) string
	// ArtifactKey identifies a rendered output for a timeline.
	ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string
}

// TimelineKeyOpts holds the inputs that change a timeline besides the disk
// count. Scene is any JSON-encodable description of the scene dimensions.
type TimelineKeyOpts struct {
	Scene        any    `json:"scene"`
	BaseDuration int64  `json:"base_duration"`
	MovesHash    string `json:"moves_hash,omitempty"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact. Scene
// matters even with the timeline fixed: disk and peg radii are drawn but
// never move.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scene    any     `json:"scene,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Loop     bool    `json:"loop,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes stage inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MovesKey returns "moves:<n>". The disk count alone determines the list.
func (DefaultKeyer) MovesKey(disks int) string {
	return fmt.Sprintf("moves:%d", disks)
}

// TimelineKey returns "timeline:<hash>".
func (DefaultKeyer) TimelineKey(disks int, opts TimelineKeyOpts) string {
	return hashKey("timeline", disks, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", timelineHash, opts)
}
