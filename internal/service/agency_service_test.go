package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/andy/agencyflow/internal/invoice"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 90, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("expected a PNG data URI, got %.40s", uri)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	return img
}

func TestAgencyService_ImportLogo(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewAgencyService(f.agency)

	profile, err := svc.ImportLogo(ctx, writePNG(t, 720, 120))
	if err != nil {
		t.Fatalf("ImportLogo failed: %v", err)
	}

	b := decodeDataURI(t, profile.LogoURL).Bounds()
	if b.Dx() != 360 || b.Dy() != 60 {
		t.Errorf("expected the logo scaled to 360x60, got %dx%d", b.Dx(), b.Dy())
	}

	stored, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.LogoURL != profile.LogoURL {
		t.Error("expected the logo to be saved")
	}

	if err := svc.RemoveLogo(ctx); err != nil {
		t.Fatalf("RemoveLogo failed: %v", err)
	}
	stored, _ = svc.Get(ctx)
	if stored.LogoURL != "" {
		t.Error("expected the logo removed")
	}
}

func TestLogoDataURI_KeepsSmallImages(t *testing.T) {
	f, err := os.Open(writePNG(t, 100, 40))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	uri, err := LogoDataURI(f)
	if err != nil {
		t.Fatalf("LogoDataURI failed: %v", err)
	}
	b := decodeDataURI(t, uri).Bounds()
	if b.Dx() != 100 || b.Dy() != 40 {
		t.Errorf("expected 100x40, got %dx%d", b.Dx(), b.Dy())
	}

	if _, err := LogoDataURI(strings.NewReader("not an image")); err == nil {
		t.Error("expected an error for non-image input")
	}
}

func TestAgencyService_CustomTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewAgencyService(f.agency)

	tmpl, err := svc.CustomTemplate(ctx)
	if err != nil {
		t.Fatalf("CustomTemplate failed: %v", err)
	}
	if tmpl != invoice.DefaultCustomTemplate {
		t.Error("expected the built-in layout before one is saved")
	}

	if err := svc.SetCustomTemplate(ctx, "<h1>{{invoice_number}}</h1>"); err != nil {
		t.Fatalf("SetCustomTemplate failed: %v", err)
	}
	tmpl, _ = svc.CustomTemplate(ctx)
	if tmpl != "<h1>{{invoice_number}}</h1>" {
		t.Errorf("unexpected template %q", tmpl)
	}

	if err := svc.ResetCustomTemplate(ctx); err != nil {
		t.Fatalf("ResetCustomTemplate failed: %v", err)
	}
	tmpl, _ = svc.CustomTemplate(ctx)
	if tmpl != invoice.DefaultCustomTemplate {
		t.Error("expected the built-in layout after reset")
	}
}
