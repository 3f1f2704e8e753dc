package employee

import (
	"bytes"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	"github.com/workify/backend/internal/domain/shared"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// AvatarSize is the edge length of stored avatars in pixels
const AvatarSize = 256

// ResizeAvatar decodes a photo and re-encodes it as an AvatarSize square JPEG.
// The photo is scaled to cover the square and centre-cropped.
func ResizeAvatar(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Avatar is not a supported image")
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Avatar is empty")
	}

	// square crop of the shorter edge
	side := w
	if h < side {
		side = h
	}
	crop := image.Rect(b.Min.X+(w-side)/2, b.Min.Y+(h-side)/2, b.Min.X+(w-side)/2+side, b.Min.Y+(h-side)/2+side)

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
