// Package pipeline runs the solve → simulate → render stages for hanoitower.
//
// The CLI and the HTTP server both go through a [Runner] so caching and
// defaults behave the same everywhere.
//
// # Stages
//
//  1. Solve: compute the move list for the disk count.
//  2. Simulate: play the moves through an [animation.Recorder] on a freshly
//     built scene, producing a timeline.
//  3. Render: write the requested formats (svg, json, dot, tree).
//
// Each stage is cached independently:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Disks: 5, Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// [animation.Recorder]: github.com/matzehuels/hanoitower/pkg/animation.Recorder
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/cache"
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultDisks is the disk count used when the caller does not pick one.
	DefaultDisks = 4

	// DefaultWidth is the default SVG width in pixels.
	DefaultWidth = 800.0

	// DefaultSpeed plays the animation in real time.
	DefaultSpeed = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
}

// FormatExtensions maps each format to its file extension.
var FormatExtensions = map[string]string{
	FormatSVG:  ".svg",
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatTree: ".tree.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// Disks is taken as given: zero disks is a valid, empty puzzle.
type Options struct {
	Disks        int           `json:"disks"`
	Formats      []string      `json:"formats,omitempty"`
	BaseDuration time.Duration `json:"base_duration,omitempty"`
	Speed        float64       `json:"speed,omitempty"`
	Scene        scene.Config  `json:"scene"`
	Width        float64       `json:"width,omitempty"`
	Height       float64       `json:"height,omitempty"`
	Loop         bool          `json:"loop,omitempty"`
	Detailed     bool          `json:"detailed,omitempty"`
	Refresh      bool          `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Disks     int
	Moves     solver.MoveList
	Scene     *scene.Scene
	Timeline  *animation.Timeline
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MoveCount    int
	Duration     time.Duration // length of the animation
	SolveTime    time.Duration
	SimulateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit    bool
	SimulateHit bool
	RenderHit   bool // all requested artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot, tree)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks. An empty
// string yields [FormatSVG].
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatSVG}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForSimulate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks the disk count.
func (o *Options) ValidateForSolve() error {
	if o.Disks < 0 || o.Disks > solver.MaxDisks {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"disks must be between 0 and %d, got %d", solver.MaxDisks, o.Disks)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetSimulateDefaults sets default timing and scene dimensions.
func (o *Options) SetSimulateDefaults() {
	if o.BaseDuration == 0 {
		o.BaseDuration = animation.BaseDuration
	}
	if o.Speed == 0 {
		o.Speed = DefaultSpeed
	}
	if o.Scene == (scene.Config{}) {
		o.Scene = scene.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForSimulate validates and sets defaults for simulation.
func (o *Options) ValidateForSimulate() error {
	o.SetSimulateDefaults()
	if o.BaseDuration < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "base duration must be > 0, got %s", o.BaseDuration)
	}
	if o.Speed < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "speed must be > 0, got %g", o.Speed)
	}
	return o.Scene.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "size must be >= 0, got %gx%g", o.Width, o.Height)
	}
	return ValidateFormats(o.Formats)
}

// EffectiveBaseDuration is BaseDuration divided by Speed: the time one
// reference length of travel takes in the produced timeline.
func (o *Options) EffectiveBaseDuration() time.Duration {
	base, speed := o.BaseDuration, o.Speed
	if base <= 0 {
		base = animation.BaseDuration
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return time.Duration(float64(base) / speed)
}

// TimelineKeyOpts returns cache key options for simulating moves.
func (o *Options) TimelineKeyOpts(moves solver.MoveList) cache.TimelineKeyOpts {
	return cache.TimelineKeyOpts{
		Scene:        o.Scene,
		BaseDuration: int64(o.EffectiveBaseDuration()),
		MovesHash:    cache.HashJSON(moves),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Scene:    o.Scene,
		Width:    o.Width,
		Height:   o.Height,
		Loop:     o.Loop,
		Detailed: o.Detailed,
	}
}
