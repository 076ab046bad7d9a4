// seehuhn.de/go/glitch - generative cover art distortion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glitch

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque colour.  Its text form is "#rrggbb".
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses a colour in hex notation, "#rrggbb" or "#rgb".  The
// leading "#" is optional.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParameterSet holds the distortion settings for one render.
//
// A ParameterSet is a plain value.  Editing a field of a copy never
// affects a render in progress; callers pass the new value to
// Session.Update, which re-renders from scratch.
type ParameterSet struct {
	BackgroundColor RGB `json:"backgroundColor" toml:"background_color" yaml:"background_color"`

	// ImageOpacity is the opacity of the cover image, in [0, 1].
	ImageOpacity float64 `json:"imageOpacity" toml:"image_opacity" yaml:"image_opacity"`

	// VerticalSliceCount and HorizontalSliceCount give the number of
	// strips for the two slice passes.  Values ≤ 1 disable a pass.
	VerticalSliceCount   int `json:"verticalSliceCount" toml:"vertical_slice_count" yaml:"vertical_slice_count"`
	HorizontalSliceCount int `json:"horizontalSliceCount" toml:"horizontal_slice_count" yaml:"horizontal_slice_count"`

	// VerticalOffset is the amplitude of the strip displacement in
	// pixels, VerticalFrequency scales the strip index before taking the
	// sine.  Both passes use these two values.
	VerticalOffset    float64 `json:"verticalOffset" toml:"vertical_offset" yaml:"vertical_offset"`
	VerticalFrequency float64 `json:"verticalFrequency" toml:"vertical_frequency" yaml:"vertical_frequency"`

	// ChromaticAberration is the channel displacement in pixels, along the
	// direction ChromaticAngle (degrees, clockwise from the x-axis).
	ChromaticAberration float64 `json:"chromaticAberration" toml:"chromatic_aberration" yaml:"chromatic_aberration"`
	ChromaticAngle      float64 `json:"chromaticAngle" toml:"chromatic_angle" yaml:"chromatic_angle"`

	// NoiseIntensity is the probability of a grain speck per grid cell.
	NoiseIntensity float64 `json:"noiseIntensity" toml:"noise_intensity" yaml:"noise_intensity"`
}

// DefaultParameters returns the settings used before any answers or
// edits are applied.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		BackgroundColor:      RGB{},
		ImageOpacity:         1,
		VerticalSliceCount:   0,
		HorizontalSliceCount: 0,
		VerticalOffset:       20,
		VerticalFrequency:    1,
		ChromaticAberration:  0,
		ChromaticAngle:       0,
		NoiseIntensity:       0,
	}
}

// Ranges of the interactive controls.  The render pipeline itself accepts
// any value; Clamp applies these bounds on behalf of a control surface.
const (
	MaxSliceCount    = 50
	MaxOffset        = 100
	MinFrequency     = 0.1
	MaxFrequency     = 5
	MaxAberration    = 10
	MaxAngle         = 360
	MaxNoise         = 1
	maxImageOpacity  = 1
	minControlsValue = 0
)

// Clamp returns a copy of p with every field limited to the range offered
// by the parameter controls.  NaN values are replaced by the lower bound.
func (p ParameterSet) Clamp() ParameterSet {
	p.ImageOpacity = clampFloat(p.ImageOpacity, minControlsValue, maxImageOpacity)
	p.VerticalSliceCount = min(max(p.VerticalSliceCount, minControlsValue), MaxSliceCount)
	p.HorizontalSliceCount = min(max(p.HorizontalSliceCount, minControlsValue), MaxSliceCount)
	p.VerticalOffset = clampFloat(p.VerticalOffset, minControlsValue, MaxOffset)
	p.VerticalFrequency = clampFloat(p.VerticalFrequency, MinFrequency, MaxFrequency)
	p.ChromaticAberration = clampFloat(p.ChromaticAberration, minControlsValue, MaxAberration)
	p.ChromaticAngle = clampFloat(p.ChromaticAngle, minControlsValue, MaxAngle)
	p.NoiseIntensity = clampFloat(p.NoiseIntensity, minControlsValue, MaxNoise)
	return p
}

func clampFloat(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return min(max(x, lo), hi)
}

// Overrides is a partial ParameterSet.  Nil fields leave the
// corresponding setting unchanged.
type Overrides struct {
	BackgroundColor      *RGB     `json:"backgroundColor,omitempty" toml:"background_color" yaml:"background_color,omitempty"`
	ImageOpacity         *float64 `json:"imageOpacity,omitempty" toml:"image_opacity" yaml:"image_opacity,omitempty"`
	VerticalSliceCount   *int     `json:"verticalSliceCount,omitempty" toml:"vertical_slice_count" yaml:"vertical_slice_count,omitempty"`
	HorizontalSliceCount *int     `json:"horizontalSliceCount,omitempty" toml:"horizontal_slice_count" yaml:"horizontal_slice_count,omitempty"`
	VerticalOffset       *float64 `json:"verticalOffset,omitempty" toml:"vertical_offset" yaml:"vertical_offset,omitempty"`
	VerticalFrequency    *float64 `json:"verticalFrequency,omitempty" toml:"vertical_frequency" yaml:"vertical_frequency,omitempty"`
	ChromaticAberration  *float64 `json:"chromaticAberration,omitempty" toml:"chromatic_aberration" yaml:"chromatic_aberration,omitempty"`
	ChromaticAngle       *float64 `json:"chromaticAngle,omitempty" toml:"chromatic_angle" yaml:"chromatic_angle,omitempty"`
	NoiseIntensity       *float64 `json:"noiseIntensity,omitempty" toml:"noise_intensity" yaml:"noise_intensity,omitempty"`
}

// IsEmpty reports whether o leaves every setting unchanged.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// Apply returns p with all non-nil fields of o substituted.
func (o Overrides) Apply(p ParameterSet) ParameterSet {
	if o.BackgroundColor != nil {
		p.BackgroundColor = *o.BackgroundColor
	}
	if o.ImageOpacity != nil {
		p.ImageOpacity = *o.ImageOpacity
	}
	if o.VerticalSliceCount != nil {
		p.VerticalSliceCount = *o.VerticalSliceCount
	}
	if o.HorizontalSliceCount != nil {
		p.HorizontalSliceCount = *o.HorizontalSliceCount
	}
	if o.VerticalOffset != nil {
		p.VerticalOffset = *o.VerticalOffset
	}
	if o.VerticalFrequency != nil {
		p.VerticalFrequency = *o.VerticalFrequency
	}
	if o.ChromaticAberration != nil {
		p.ChromaticAberration = *o.ChromaticAberration
	}
	if o.ChromaticAngle != nil {
		p.ChromaticAngle = *o.ChromaticAngle
	}
	if o.NoiseIntensity != nil {
		p.NoiseIntensity = *o.NoiseIntensity
	}
	return p
}

// Merge returns o with all non-nil fields of other substituted.
func (o Overrides) Merge(other Overrides) Overrides {
	if other.BackgroundColor != nil {
		o.BackgroundColor = other.BackgroundColor
	}
	if other.ImageOpacity != nil {
		o.ImageOpacity = other.ImageOpacity
	}
	if other.VerticalSliceCount != nil {
		o.VerticalSliceCount = other.VerticalSliceCount
	}
	if other.HorizontalSliceCount != nil {
		o.HorizontalSliceCount = other.HorizontalSliceCount
	}
	if other.VerticalOffset != nil {
		o.VerticalOffset = other.VerticalOffset
	}
	if other.VerticalFrequency != nil {
		o.VerticalFrequency = other.VerticalFrequency
	}
	if other.ChromaticAberration != nil {
		o.ChromaticAberration = other.ChromaticAberration
	}
	if other.ChromaticAngle != nil {
		o.ChromaticAngle = other.ChromaticAngle
	}
	if other.NoiseIntensity != nil {
		o.NoiseIntensity = other.NoiseIntensity
	}
	return o
}
