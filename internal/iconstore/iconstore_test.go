package iconstore

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "cooler.png"))

	d := Dir{Root: root}
	img, err := d.Icon(context.Background(), "/cooler.png")
	if err != nil {
		t.Fatalf("Icon failed: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}

	if _, err := d.Icon(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected error for reference outside root")
	}
	if _, err := d.Icon(context.Background(), "missing.png"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHTTP(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "viseira.png"))
	srv := httptest.NewServer(http.FileServer(http.Dir(root)))
	defer srv.Close()

	h := NewHTTP()
	if _, err := h.Icon(context.Background(), srv.URL+"/viseira.png"); err != nil {
		t.Fatalf("Icon failed: %v", err)
	}
	if _, err := h.Icon(context.Background(), srv.URL+"/nope.png"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

type stubSource struct {
	name string
	refs []string
}

func (s *stubSource) Icon(_ context.Context, ref string) (image.Image, error) {
	s.refs = append(s.refs, ref)
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestMux(t *testing.T) {
	web := &stubSource{name: "web"}
	store := &stubSource{name: "s3"}
	local := &stubSource{name: "dir"}
	m := &Mux{
		Schemes: map[string]Source{"http": web, "https": web, "s3": store},
		Default: local,
	}

	for _, ref := range []string{"https://cdn/a.png", "s3://icons/b.png", "c.png", "HTTP://cdn/d.png"} {
		if _, err := m.Icon(context.Background(), ref); err != nil {
			t.Fatalf("Icon(%q) failed: %v", ref, err)
		}
	}
	if len(web.refs) != 2 || len(store.refs) != 1 || len(local.refs) != 1 {
		t.Fatalf("unexpected routing: web=%v s3=%v dir=%v", web.refs, store.refs, local.refs)
	}

	if _, err := m.Icon(context.Background(), "ftp://x/y.png"); !errors.Is(err, ErrNoSource) {
		t.Fatalf("unexpected error: %v", err)
	}
	empty := &Mux{}
	if _, err := empty.Icon(context.Background(), "plain.png"); !errors.Is(err, ErrNoSource) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestS3Locate(t *testing.T) {
	s := &S3{bucket: "prizes"}
	cases := []struct {
		ref, bucket, key string
	}{
		{"s3://other/icons/a.png", "other", "icons/a.png"},
		{"icons/b.png", "prizes", "icons/b.png"},
		{"/c.png", "prizes", "c.png"},
	}
	for _, c := range cases {
		b, k := s.locate(c.ref)
		if b != c.bucket || k != c.key {
			t.Fatalf("unexpected location for %q: got=(%s,%s) want=(%s,%s)", c.ref, b, k, c.bucket, c.key)
		}
	}
}
