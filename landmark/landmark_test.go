// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package landmark

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
width: 200
height: 100
faces:
  - rect: [10, 20, 50, 40]
    points:
      - [10, 20]
      - [60.4, 20]
      - [35, 59.6]
  - rect: [100, 10, 30, 30]
    points: [[100, 10]]
`

const sampleJSON = `{"width": 200, "height": 100, "faces": [{"rect": [10, 20, 50, 40], "points": [[10, 20], [60, 20], [35, 60]]}]}`

func TestReadFileDetector(t *testing.T) {
	for name, src := range map[string]string{"yaml": sampleYAML, "json": sampleJSON} {
		t.Run(name, func(t *testing.T) {
			d, err := ReadFileDetector(strings.NewReader(src))
			require.NoError(t, err)

			faces, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 200, 100)))
			require.NoError(t, err)
			require.NotEmpty(t, faces)

			assert.Equal(t, image.Rect(10, 20, 60, 60), faces[0].Rect)
			assert.Equal(t, []image.Point{{X: 10, Y: 20}, {X: 60, Y: 20}, {X: 35, Y: 60}}, faces[0].Points)
		})
	}
}

func TestFileDetector_Scale(t *testing.T) {
	d, err := ReadFileDetector(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	faces, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 400, 50)))
	require.NoError(t, err)
	require.Len(t, faces, 2)

	assert.Equal(t, image.Rect(20, 10, 120, 30), faces[0].Rect)
	assert.Equal(t, image.Point{X: 120, Y: 10}, faces[0].Points[1])
	assert.Equal(t, []image.Point{{X: 200, Y: 5}}, faces[1].Points)
}

func TestFileDetector_Canceled(t *testing.T) {
	d, err := ReadFileDetector(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Detect(ctx, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFileDetector_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "faces: [[["},
		{"short rect", "faces:\n  - rect: [1, 2, 3]\n"},
		{"bad point", "faces:\n  - rect: [1, 2, 3, 4]\n    points: [[1, 2, 3]]\n"},
		{"negative size", "width: -1\nheight: 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFileDetector(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestNewFileDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	d, err := NewFileDetector(path)
	require.NoError(t, err)
	assert.Len(t, d.faces, 2)

	_, err = NewFileDetector(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	faces := []Face{{
		Rect:   image.Rect(5, 6, 25, 36),
		Points: []image.Point{{X: 5, Y: 6}, {X: 25, Y: 36}},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteFile(&buf, image.Point{X: 50, Y: 60}, faces))

	d, err := ReadFileDetector(&buf)
	require.NoError(t, err)
	got, err := d.Detect(context.Background(), image.NewGray(image.Rect(0, 0, 50, 60)))
	require.NoError(t, err)
	assert.Equal(t, faces, got)
}

func TestFirst(t *testing.T) {
	_, err := First(nil)
	assert.ErrorIs(t, err, ErrNoFace)

	faces := []Face{{Rect: image.Rect(0, 0, 1, 1)}, {Rect: image.Rect(0, 0, 2, 2)}}
	f, err := First(faces)
	require.NoError(t, err)
	assert.Equal(t, faces[0], f)
}

func TestSubset28(t *testing.T) {
	points := make([]image.Point, NumLandmarks)
	for i := range points {
		points[i] = image.Point{X: i, Y: 2 * i}
	}

	got, err := Subset28(points)
	require.NoError(t, err)
	require.Len(t, got, 28)
	assert.Equal(t, image.Point{X: 0, Y: 0}, got[0])
	assert.Equal(t, image.Point{X: 27, Y: 54}, got[15])
	assert.Equal(t, image.Point{X: 57, Y: 114}, got[27])

	_, err = Subset28(points[:5])
	assert.True(t, errors.Is(err, ErrLandmarkCount))
}

func TestToR2(t *testing.T) {
	got := ToR2([]image.Point{{X: 1, Y: 2}, {X: -3, Y: 4}})
	assert.Equal(t, []r2.Point{{X: 1, Y: 2}, {X: -3, Y: 4}}, got)
}
