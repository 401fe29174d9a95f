package helper

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestConvertToWebPDownscales(t *testing.T) {
	out, err := ConvertToWebP(pngBytes(t, 1600, 1200), "photo.png", WebPOptions{MaxW: 800, MaxH: 800, Quality: 80})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
}

func TestConvertToWebPKeepsSmallImages(t *testing.T) {
	out, err := ConvertToWebP(pngBytes(t, 300, 200), "small.png", PhotoWebPOptions())
	if err != nil {
		t.Fatal(err)
	}
	cfg, _ := webp.DecodeConfig(bytes.NewReader(out))
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("size = %dx%d, want 300x200", cfg.Width, cfg.Height)
	}
}

func TestConvertToWebPRejectsNonImages(t *testing.T) {
	_, err := ConvertToWebP([]byte("%PDF-1.7 not an image"), "cv.pdf", PhotoWebPOptions())
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("error = %v, want ErrUnsupportedImage", err)
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("/documents/global/", "İş Sözleşmesi_v2.DOCX")
	if !strings.HasPrefix(key, "documents/global/") {
		t.Errorf("key %q lost its dir", key)
	}
	if !strings.HasSuffix(key, ".docx") {
		t.Errorf("key %q should keep a lower-case extension", key)
	}
	if !strings.Contains(key, "/is-sozlesmesi-v2_") {
		t.Errorf("key %q should carry the slugged base name", key)
	}
	if BuildObjectKey("d", "a.pdf") == BuildObjectKey("d", "a.pdf") {
		t.Error("keys for the same file name should differ")
	}
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Kadıköy Şube":  "kadikoy-sube",
		"  çalışma_01 ": "calisma-01",
		"***":           "file",
	} {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()
	if err := store.Put(ctx, "a/b.txt", strings.NewReader("hi"), "text/plain"); err != nil {
		t.Fatal(err)
	}
	if !store.Has("a/b.txt") || store.PublicURL("a/b.txt") != "memory://a/b.txt" {
		t.Error("object not stored")
	}
	DeleteBestEffort(ctx, store, "a/b.txt")
	if store.Has("a/b.txt") {
		t.Error("object not deleted")
	}
}

func TestCollectUploadFiles(t *testing.T) {
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{
		"zeta":    {{Filename: "z.pdf"}},
		"files[]": {{Filename: "a.pdf"}, {Filename: ""}},
		"alpha":   {{Filename: "b.png"}},
	}}
	got, truncated := CollectUploadFiles(form, 0)
	names := make([]string, 0, len(got))
	for _, fh := range got {
		names = append(names, fh.Filename)
	}
	if strings.Join(names, ",") != "a.pdf,b.png,z.pdf" || truncated {
		t.Errorf("files = %v (truncated=%v)", names, truncated)
	}
	if got, truncated := CollectUploadFiles(form, 2); len(got) != 2 || !truncated {
		t.Errorf("cap not applied: %d files, truncated=%v", len(got), truncated)
	}
}
