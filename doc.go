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

// Package glitch draws distorted cover art.
//
// A cover is rendered by [Render] onto a [Surface], an RGBA raster with a
// global alpha value and a blend mode.  The source image is fitted into
// the surface, cut into displaced strips ([ApplySlices]), split into
// shifted colour channels ([ApplyAberration]) and finally covered with
// film grain ([ApplyGrain]).  All settings are held in a [ParameterSet];
// [DeriveParameters] maps the answers of a three-question quiz to
// settings.
//
// A [Session] ties the pieces together for one displayed cover.  The
// raster is [PixelRatio] times the displayed size of the target element,
// and every change of settings or size re-renders the whole surface.
//
// Path filling for the surface is done by a [Rasteriser], which computes
// exact per-pixel coverage for paths built with seehuhn.de/go/geom/path.
package glitch
