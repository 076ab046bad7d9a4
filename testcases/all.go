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

// Shapes lists the rasteriser test shapes, grouped by category.
var Shapes = map[string][]Shape{
	"fill":  fillShapes,
	"curve": curveShapes,
	"ctm":   ctmShapes,
}

// Scenarios lists the cover scenarios, grouped by the stage they
// exercise.
var Scenarios = map[string][]Scenario{
	"layout":     layoutScenarios,
	"slices":     sliceScenarios,
	"aberration": aberrationScenarios,
	"grain":      grainScenarios,
	"combined":   combinedScenarios,
}
