package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// IsImage reports whether the mime type is one we re-encode.
func IsImage(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff":
		return true
	}
	return false
}

// ToWebP decodes r, scales it down to maxWidth when wider, and encodes lossy WebP.
func ToWebP(r io.Reader, mimeType string, maxWidth int, quality float32) ([]byte, error) {
	img, err := decode(r, mimeType)
	if err != nil {
		return nil, err
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(r io.Reader, mimeType string) (image.Image, error) {
	if strings.Contains(strings.ToLower(mimeType), "webp") {
		img, err := webp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("webp decode: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode: %w", err)
	}
	return img, nil
}
