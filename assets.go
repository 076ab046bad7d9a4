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
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	// image formats accepted for the cover art
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Assets holds the decoded cover images.  Both images are read-only once
// loaded and may be shared between sessions.
type Assets struct {
	Source  image.Image // the cover art which gets distorted
	Overlay image.Image // drawn undistorted on top, may be nil
}

// DecodeImage decodes an image in any of the supported formats.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadImage reads and decodes the image file at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadAssets decodes the source and overlay images concurrently and
// returns once both are available.  An empty overlayPath means that there
// is no overlay.  If either image fails to load, the zero Assets and the
// first error are returned.
func LoadAssets(ctx context.Context, sourcePath, overlayPath string) (Assets, error) {
	var a Assets
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := LoadImage(sourcePath)
		if err != nil {
			return fmt.Errorf("source image: %w", err)
		}
		a.Source = img
		return nil
	})
	if overlayPath != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := LoadImage(overlayPath)
			if err != nil {
				return fmt.Errorf("overlay image: %w", err)
			}
			a.Overlay = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Assets{}, err
	}
	return a, nil
}
