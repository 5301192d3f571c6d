package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "hanoitower:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MovesKey generates a prefixed key for move list caching.
func (k *ScopedKeyer) MovesKey(disks int) string {
	return k.prefix + k.inner.MovesKey(disks)
}

// TimelineKey generates a prefixed key for timeline caching.
func (k *ScopedKeyer) TimelineKey(disks int, opts TimelineKeyOpts) string {
	return k.prefix + k.inner.TimelineKey(disks, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(timelineHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(timelineHash, opts)
}
