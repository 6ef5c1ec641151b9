package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestAvatarThumbnail_ProducesSquareJPEG(t *testing.T) {
	t.Parallel()

	out, err := AvatarThumbnail("image/png", pngBytes(t, 640, 320))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("thumbnail does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg, got %s", format)
	}
	if b := img.Bounds(); b.Dx() != AvatarSize || b.Dy() != AvatarSize {
		t.Errorf("expected %dx%d, got %dx%d", AvatarSize, AvatarSize, b.Dx(), b.Dy())
	}
}

func TestAvatarThumbnail_RejectsNonImages(t *testing.T) {
	t.Parallel()

	if _, err := AvatarThumbnail("application/pdf", []byte("%PDF-1.4")); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for pdf, got %v", err)
	}
	if _, err := AvatarThumbnail("image/png", []byte("not really a png")); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for garbage, got %v", err)
	}
}

func TestDiskStore_PutWritesFileAndReturnsURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	thumb := imaging.New(4, 4, color.White)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		t.Fatalf("encode: %v", err)
	}

	url, err := store.Put(context.Background(), "avatars", ".jpg", buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/avatars/") || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("unexpected url %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	written, err := os.ReadFile(filepath.Join(dir, "avatars", name))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if !bytes.Equal(written, buf.Bytes()) {
		t.Error("written bytes differ")
	}
}
