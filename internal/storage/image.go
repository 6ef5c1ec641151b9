package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the webp decoder
)

// AvatarSize is the edge length of stored avatars in pixels.
const AvatarSize = 256

// ErrUnsupportedImage is returned for content that is not an accepted image.
var ErrUnsupportedImage = errors.New("unsupported image")

// SupportedImageTypes lists the accepted upload content types.
var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// AvatarThumbnail decodes data and returns a square JPEG thumbnail cropped
// around the center.
func AvatarThumbnail(contentType string, data []byte) ([]byte, error) {
	if !SupportedImageTypes[contentType] {
		return nil, fmt.Errorf("%w: content type %q", ErrUnsupportedImage, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpeg.DefaultQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
