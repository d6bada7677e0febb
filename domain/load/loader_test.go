package load

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_DecodesPNG(t *testing.T) {
	path := writeTestPNG(t, 12, 8)
	img, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestOpen_MissingFileFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDecode_GarbageFails(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStart_DeliversExactlyOneResult(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	ch := Start(path, nil)
	res, ok := <-ch
	if !ok {
		t.Fatalf("channel closed without result")
	}
	if res.Err != nil || res.Img == nil || res.Path != path {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("channel should close after one result")
	}
}

func TestStart_FailureCarriesError(t *testing.T) {
	ch := Start(filepath.Join(t.TempDir(), "missing.png"), nil)
	res := <-ch
	if res.Err == nil || res.Img != nil {
		t.Fatalf("expected failed result, got %+v", res)
	}
}

func TestChecked_RejectsDegenerate(t *testing.T) {
	if _, err := checked(image.NewRGBA(image.Rect(0, 0, 0, 5))); !errors.Is(err, ErrDegenerateImage) {
		t.Fatalf("expected ErrDegenerateImage, got %v", err)
	}
}

func TestPlaceholder_NonEmpty(t *testing.T) {
	img := Placeholder(64, 32)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	// the checker pattern must contain two distinct colors
	a := img.RGBAAt(0, 0)
	b := img.RGBAAt(16, 0)
	if a == b {
		t.Fatalf("placeholder is flat, expected checkerboard")
	}
}
