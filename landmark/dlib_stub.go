// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

//go:build !dlib

package landmark

import (
	"context"
	"image"
)

// DlibDetector is unavailable without the dlib build tag.
type DlibDetector struct{}

func NewDlibDetector(modelsDir string) (*DlibDetector, error) {
	return nil, ErrDetectorUnavailable
}

func (d *DlibDetector) Detect(ctx context.Context, img image.Image) ([]Face, error) {
	return nil, ErrDetectorUnavailable
}

func (d *DlibDetector) Close() error {
	return nil
}
