package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
	if img.Empty() {
		t.Error("100x50 image should not be empty")
	}
	if !NewRGBAImage(0, 10).Empty() {
		t.Error("0x10 image should be empty")
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageStripsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 4, 5, 6))
	src.SetNRGBA(3, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	src.SetNRGBA(4, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	img := RGBAImageFromImage(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Errorf("Converted image should be anchored at origin, got %v", img.Bounds())
	}
	if got := img.GetRGB(0, 0); got != (RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("Transparent pixel should keep its channels, got %v", got)
	}
	if got := img.RGBAAt(1, 1).A; got != 255 {
		t.Errorf("Converted pixels should be opaque, got alpha %d", got)
	}
}

func TestCropClampsToBounds(t *testing.T) {
	img := CreateGradientImage(5, 4)

	pixels := img.Crop(image.Rect(4, 2, 8, 10))
	if len(pixels) != 2 {
		t.Fatalf("Expected 1x2 clipped crop, got %d pixels", len(pixels))
	}
	if pixels[0] != img.GetRGB(4, 2) || pixels[1] != img.GetRGB(4, 3) {
		t.Errorf("Crop returned wrong pixels: %v", pixels)
	}

	if got := img.Crop(image.Rect(10, 10, 12, 12)); got != nil {
		t.Errorf("Crop outside the image should be empty, got %v", got)
	}
}

func TestLuma(t *testing.T) {
	if v := Luma(RGB{R: 255, G: 255, B: 255}); v != 255 {
		t.Errorf("White pixel should convert to 255, got %d", v)
	}
	if v := Luma(RGB{}); v != 0 {
		t.Errorf("Black pixel should convert to 0, got %d", v)
	}
	// Red (0.299 * 255 = 76.245)
	if v := Luma(RGB{R: 255}); v < 75 || v > 77 {
		t.Errorf("Red pixel should convert to ~76, got %d", v)
	}
}

func TestMeanLuma(t *testing.T) {
	img := CreateCheckerboardImage(4, 4, 1)

	if got := MeanLuma(img, image.Rect(0, 0, 2, 2)); got != 127.5 {
		t.Errorf("Expected mean luma 127.5 over a 2x2 checker, got %f", got)
	}
	if got := MeanLuma(img, image.Rect(8, 8, 9, 9)); got != 0 {
		t.Errorf("Mean luma outside the image should be 0, got %f", got)
	}
}

func TestGaussianBlurUniformImage(t *testing.T) {
	img := CreateSolidImage(16, 12, RGB{R: 90, G: 180, B: 30})

	for _, sigma := range []float64{0, 0.5, 1, 3, 9} {
		blurred := GaussianBlur(img, sigma)
		if blurred.Width() != img.Width() || blurred.Height() != img.Height() {
			t.Fatalf("sigma %v: blur changed dimensions to %dx%d", sigma, blurred.Width(), blurred.Height())
		}
		if d := CalculateMaxDiff(img, blurred); d != 0 {
			t.Errorf("sigma %v: blurring a uniform image should not change it, max diff %d", sigma, d)
		}
	}
}

func TestGaussianBlurSoftensEdges(t *testing.T) {
	img := CreateCheckerboardImage(32, 32, 4)
	blurred := GaussianBlur(img, 2)

	if d := CalculateMaxDiff(img, blurred); d == 0 {
		t.Error("Blurring a checkerboard should change it")
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeToColumns(t *testing.T) {
	img := CreateGradientImage(400, 200)

	resized := ResizeToColumns(img, 40, 2, 3, 2)
	if resized.Width() != 80 {
		t.Errorf("Expected width 80, got %d", resized.Width())
	}
	// 40 columns * (200/400) / 2 = 10 rows of 3 pixels
	if resized.Height() != 30 {
		t.Errorf("Expected height 30, got %d", resized.Height())
	}

	if same := ResizeToColumns(img, 500, 2, 3, 2); same != img {
		t.Error("ResizeToColumns should never upscale")
	}
}

func TestDecodeBytes(t *testing.T) {
	src := CreateEdgeImage(8, 6)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src.RGBA); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	img, format, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected format png, got %q", format)
	}
	if d := CalculateMaxDiff(src, img); d != 0 {
		t.Errorf("PNG should be lossless, max diff %d", d)
	}

	if _, _, err := DecodeBytes([]byte("definitely not an image")); err == nil {
		t.Error("Decoding garbage should fail")
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateCheckerboardImage(64, 64, 8)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SaveImage(img.RGBA, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}
	if d := CalculateMaxDiff(img, loaded); d != 0 {
		t.Errorf("PNG should be lossless, max diff %d", d)
	}

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Loading a missing file should fail")
	}
}
