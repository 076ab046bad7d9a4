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

package cli

import (
	"github.com/spf13/pflag"

	"seehuhn.de/go/glitch"
)

// paramFlags binds one command-line flag to every field of
// glitch.ParameterSet.  Only flags given on the command line override the
// other parameter sources.
type paramFlags struct {
	flags *pflag.FlagSet

	background string
	opacity    float64
	vslices    int
	hslices    int
	offset     float64
	frequency  float64
	aberration float64
	angle      float64
	noise      float64
}

func addParamFlags(fs *pflag.FlagSet) *paramFlags {
	d := glitch.DefaultParameters()
	pf := &paramFlags{flags: fs}
	fs.StringVar(&pf.background, "background", d.BackgroundColor.String(), "background colour, #rrggbb")
	fs.Float64Var(&pf.opacity, "opacity", d.ImageOpacity, "image opacity, 0 to 1")
	fs.IntVar(&pf.vslices, "vslices", d.VerticalSliceCount, "number of vertical strips")
	fs.IntVar(&pf.hslices, "hslices", d.HorizontalSliceCount, "number of horizontal strips")
	fs.Float64Var(&pf.offset, "offset", d.VerticalOffset, "strip displacement in pixels")
	fs.Float64Var(&pf.frequency, "frequency", d.VerticalFrequency, "strip displacement frequency")
	fs.Float64Var(&pf.aberration, "aberration", d.ChromaticAberration, "colour channel displacement in pixels")
	fs.Float64Var(&pf.angle, "angle", d.ChromaticAngle, "colour channel displacement angle in degrees")
	fs.Float64Var(&pf.noise, "noise", d.NoiseIntensity, "grain density, 0 to 1")
	return pf
}

// overrides returns the parameters set on the command line.
func (pf *paramFlags) overrides() (glitch.Overrides, error) {
	var o glitch.Overrides
	if pf.flags.Changed("background") {
		c, err := glitch.ParseRGB(pf.background)
		if err != nil {
			return glitch.Overrides{}, err
		}
		o.BackgroundColor = &c
	}
	if pf.flags.Changed("opacity") {
		o.ImageOpacity = &pf.opacity
	}
	if pf.flags.Changed("vslices") {
		o.VerticalSliceCount = &pf.vslices
	}
	if pf.flags.Changed("hslices") {
		o.HorizontalSliceCount = &pf.hslices
	}
	if pf.flags.Changed("offset") {
		o.VerticalOffset = &pf.offset
	}
	if pf.flags.Changed("frequency") {
		o.VerticalFrequency = &pf.frequency
	}
	if pf.flags.Changed("aberration") {
		o.ChromaticAberration = &pf.aberration
	}
	if pf.flags.Changed("angle") {
		o.ChromaticAngle = &pf.angle
	}
	if pf.flags.Changed("noise") {
		o.NoiseIntensity = &pf.noise
	}
	return o, nil
}
