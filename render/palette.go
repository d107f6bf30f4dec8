// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"image/color"
	"math/rand"
)

// Palette returns n random opaque colors. The seed parameter ensures
// reproducibility.
func Palette(n int, seed int64) []color.Color {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	out := make([]color.Color, max(n, 1))
	for i := range out {
		out[i] = color.RGBA{
			R: uint8(random.Intn(256)),
			G: uint8(random.Intn(256)),
			B: uint8(random.Intn(256)),
			A: 255,
		}
	}
	return out
}

func cssColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}
