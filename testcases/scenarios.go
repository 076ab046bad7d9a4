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

package testcases

import (
	"image"
	"image/color"

	"seehuhn.de/go/glitch"
)

// params returns the default parameters, modified by f.
func params(f func(p *glitch.ParameterSet)) glitch.ParameterSet {
	p := glitch.DefaultParameters()
	if f != nil {
		f(&p)
	}
	return p
}

func gradient(w, h int) func() image.Image {
	return func() image.Image { return Gradient(w, h) }
}

func checker(w, h, cell int) func() image.Image {
	return func() image.Image { return Checker(w, h, cell) }
}

func stripes(w, h, bar int) func() image.Image {
	return func() image.Image { return Stripes(w, h, bar) }
}

var layoutScenarios = []Scenario{
	{
		Name:      "background_only",
		CSSWidth:  100,
		CSSHeight: 100,
		Params: params(func(p *glitch.ParameterSet) {
			p.BackgroundColor = glitch.RGB{R: 0x20, G: 0x40, B: 0x80}
		}),
	},
	{
		Name:      "landscape",
		CSSWidth:  400,
		CSSHeight: 400,
		Source:    gradient(1000, 500),
		Params:    params(nil),
	},
	{
		Name:      "portrait",
		CSSWidth:  300,
		CSSHeight: 200,
		Source:    gradient(200, 400),
		Params:    params(nil),
	},
	{
		Name:      "overlay",
		CSSWidth:  200,
		CSSHeight: 200,
		Source:    checker(300, 300, 30),
		Overlay:   func() image.Image { return Frame(150, 150, 8) },
		Params: params(func(p *glitch.ParameterSet) {
			p.ImageOpacity = 0.5
			p.BackgroundColor = glitch.RGB{R: 0x80}
		}),
	},
}

var sliceScenarios = []Scenario{
	{
		Name:      "vertical",
		CSSWidth:  200,
		CSSHeight: 150,
		Source:    checker(400, 300, 25),
		Params: params(func(p *glitch.ParameterSet) {
			p.VerticalSliceCount = 12
			p.VerticalOffset = 30
		}),
	},
	{
		Name:      "horizontal",
		CSSWidth:  200,
		CSSHeight: 150,
		Source:    stripes(400, 300, 20),
		Params: params(func(p *glitch.ParameterSet) {
			p.HorizontalSliceCount = 7
			p.VerticalOffset = 40
			p.VerticalFrequency = 3
		}),
	},
	{
		Name:      "both",
		CSSWidth:  200,
		CSSHeight: 200,
		Source:    gradient(300, 300),
		Params: params(func(p *glitch.ParameterSet) {
			p.VerticalSliceCount = 50
			p.HorizontalSliceCount = 50
			p.VerticalOffset = 100
			p.VerticalFrequency = 5
		}),
	},
}

var aberrationScenarios = []Scenario{
	{
		Name:      "horizontal",
		CSSWidth:  150,
		CSSHeight: 150,
		Source:    checker(300, 300, 50),
		Params: params(func(p *glitch.ParameterSet) {
			p.ChromaticAberration = 6
		}),
	},
	{
		Name:      "diagonal",
		CSSWidth:  150,
		CSSHeight: 150,
		Source:    stripes(300, 300, 30),
		Params: params(func(p *glitch.ParameterSet) {
			p.ChromaticAberration = 10
			p.ChromaticAngle = 135
			p.ImageOpacity = 0.7
		}),
	},
}

var grainScenarios = []Scenario{
	{
		Name:      "light",
		CSSWidth:  120,
		CSSHeight: 80,
		Source:    func() image.Image { return Solid(240, 160, color.Black) },
		Params: params(func(p *glitch.ParameterSet) {
			p.NoiseIntensity = 0.2
		}),
		Seed: 1,
	},
	{
		Name:      "full",
		CSSWidth:  120,
		CSSHeight: 80,
		Params: params(func(p *glitch.ParameterSet) {
			p.NoiseIntensity = 1
		}),
		Seed: 2,
	},
}

var combinedScenarios = []Scenario{
	{
		Name:      "answers_or",
		CSSWidth:  200,
		CSSHeight: 200,
		Source:    gradient(400, 400),
		Params:    answerParams(&glitch.AnswerRecord{Question1: 5, Question2: glitch.ChoiceOr, Question3: 3}),
		Seed:      3,
	},
	{
		Name:      "answers_argent",
		CSSWidth:  200,
		CSSHeight: 200,
		Source:    checker(400, 400, 40),
		Params:    answerParams(&glitch.AnswerRecord{Question1: 10, Question2: glitch.ChoiceArgent, Question3: 10}),
		Seed:      4,
	},
}

func answerParams(a *glitch.AnswerRecord) glitch.ParameterSet {
	return glitch.DeriveParameters(a).Apply(glitch.DefaultParameters())
}
