// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/splat"
)

// Image composites the color attachment over background. Each pixel shows
// the nearest splat blended by its opacity.
func (t *Target) Image(background splat.RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := range t.height {
		for x := range t.width {
			i := y*t.width + x
			c := background
			if t.ids[i] != splat.NoID {
				c = background.Lerp(t.color[i], t.opacity[i])
			}
			img.SetNRGBA(x, y, c.NRGBA(1))
		}
	}
	return img
}

// EncodePNG writes the composited color attachment as PNG.
func (t *Target) EncodePNG(w io.Writer, background splat.RGB) error {
	if err := png.Encode(w, t.Image(background)); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the composited color attachment to a PNG file.
func (t *Target) SavePNG(path string, background splat.RGB) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("raster: close %s: %w", path, cerr)
		}
	}()
	return t.EncodePNG(f, background)
}
