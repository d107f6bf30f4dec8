// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

//go:build !dlib

package landmark

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDlibDetector_Unavailable(t *testing.T) {
	_, err := NewDlibDetector("models")
	assert.ErrorIs(t, err, ErrDetectorUnavailable)

	var d DlibDetector
	_, err = d.Detect(context.Background(), image.NewGray(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, ErrDetectorUnavailable)
	assert.NoError(t, d.Close())
}
