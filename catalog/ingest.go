// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Normalized is the outcome of decoding and (possibly) downscaling one
// upload. When no resize was needed the original bytes pass through
// untouched to avoid a lossy re-encode.
type Normalized struct {
	Data    []byte
	Width   int
	Height  int
	Resized bool
}

// Normalize decodes an upload and downscales it to maxWidth pixels wide,
// preserving aspect ratio, when it is wider than that. maxWidth <= 0
// disables resizing but still validates that the bytes decode.
// Downscaling is lossy and irreversible; the original resolution is not
// retained. A decode or encode failure is returned as an *IngestError.
func Normalize(name string, data []byte, maxWidth int) (Normalized, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Normalized{}, &IngestError{Name: name, Err: fmt.Errorf("decode: %w", err)}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth <= 0 || w <= maxWidth {
		return Normalized{Data: data, Width: w, Height: h}, nil
	}

	// Height 0 keeps the aspect ratio.
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return Normalized{}, &IngestError{Name: name, Err: fmt.Errorf("encode: %w", err)}
	}

	rb := resized.Bounds()
	return Normalized{
		Data:    buf.Bytes(),
		Width:   rb.Dx(),
		Height:  rb.Dy(),
		Resized: true,
	}, nil
}
