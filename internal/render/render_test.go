package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
	"testing"
	"time"

	"prize_wheel/internal/model"
)

type fakeIcons struct {
	img   image.Image
	err   error
	calls int
}

func (f *fakeIcons) Icon(_ context.Context, _ string) (image.Image, error) {
	f.calls++
	return f.img, f.err
}

func newTestRenderer(t *testing.T, icons IconSource) *Renderer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Size = 400
	r, err := New(cfg, icons)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func twoSectors() []model.Prize {
	return []model.Prize{
		{ID: 1, Name: "A", Color: "#ff0000"},
		{ID: 2, Name: "B", Color: "#0000ff"},
	}
}

func TestRender_Empty(t *testing.T) {
	r := newTestRenderer(t, nil)
	img, err := r.Render(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Fatalf("unexpected size: %v", img.Bounds())
	}
	for _, px := range img.Pix {
		if px != 0 {
			t.Fatalf("empty wheel must be transparent")
		}
	}
}

func TestRender_SectorPlacement(t *testing.T) {
	r := newTestRenderer(t, nil)

	img, err := r.Render(context.Background(), twoSectors(), 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// Sector 0 covers the right half at rotation 0.
	if got := img.RGBAAt(249, 114); got != red {
		t.Fatalf("unexpected color in sector 0: got=%v want=%v", got, red)
	}
	if got := img.RGBAAt(150, 285); got != blue {
		t.Fatalf("unexpected color in sector 1: got=%v want=%v", got, blue)
	}

	img, err = r.Render(context.Background(), twoSectors(), 90)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// A quarter turn clockwise moves sector 0 to the bottom half.
	if got := img.RGBAAt(285, 249); got != red {
		t.Fatalf("unexpected color after rotation: got=%v want=%v", got, red)
	}
	if got := img.RGBAAt(114, 150); got != blue {
		t.Fatalf("unexpected color after rotation: got=%v want=%v", got, blue)
	}
}

func TestRender_RingAndHub(t *testing.T) {
	r := newTestRenderer(t, nil)
	img, err := r.Render(context.Background(), twoSectors(), 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := img.RGBAAt(200, 17); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("unexpected ring color: got=%v", got)
	}
	hub := color.RGBA{R: 0x29, G: 0x29, B: 0x29, A: 0xff}
	if got := img.RGBAAt(200, 200); got != hub {
		t.Fatalf("unexpected hub color: got=%v want=%v", got, hub)
	}
}

func TestRender_IconDrawnAndCached(t *testing.T) {
	green := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(green.Pix); i += 4 {
		copy(green.Pix[i:i+4], []byte{0, 0xff, 0, 0xff})
	}
	icons := &fakeIcons{img: green}
	r := newTestRenderer(t, icons)

	sectors := []model.Prize{{ID: 1, Name: "Cooler", Icon: "cooler.png", Color: "#ffffff"}}
	for i := 0; i < 2; i++ {
		img, err := r.Render(context.Background(), sectors, 0)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		// A single sector puts its label at the bottom, 70% out.
		got := img.RGBAAt(200, 338)
		if got.G < 200 || got.R > 50 {
			t.Fatalf("icon not drawn at label anchor: got=%v", got)
		}
	}
	if icons.calls != 1 {
		t.Fatalf("unexpected icon fetches: got=%d want=1", icons.calls)
	}
}

func TestRender_MissingIconIsSkipped(t *testing.T) {
	icons := &fakeIcons{err: errors.New("not found")}
	r := newTestRenderer(t, icons)

	sectors := []model.Prize{{ID: 1, Name: "Caderno", Icon: "missing.png", Color: "#ff0000"}}
	for i := 0; i < 3; i++ {
		if _, err := r.Render(context.Background(), sectors, 10); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if icons.calls != 1 {
		t.Fatalf("failed icon should be fetched once: got=%d", icons.calls)
	}

	r.ForgetIcons()
	if _, err := r.Render(context.Background(), sectors, 10); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if icons.calls != 2 {
		t.Fatalf("icon should be refetched after ForgetIcons: got=%d", icons.calls)
	}
}

func TestRender_CanceledContext(t *testing.T) {
	r := newTestRenderer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, twoSectors(), 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRender_NonFiniteRotation(t *testing.T) {
	r := newTestRenderer(t, nil)
	for _, rot := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := r.Render(context.Background(), twoSectors(), rot); !errors.Is(err, ErrInvalidRotation) {
			t.Fatalf("unexpected error for %v: %v", rot, err)
		}
	}
	if _, err := r.Render(context.Background(), twoSectors(), 1e300); err != nil {
		t.Fatalf("Render of a huge finite rotation failed: %v", err)
	}
}

// cancelingIcons ends the caller's context on the first fetch, like a display
// disconnecting mid-request.
type cancelingIcons struct {
	img    image.Image
	cancel context.CancelFunc
	calls  int
}

func (c *cancelingIcons) Icon(ctx context.Context, _ string) (image.Image, error) {
	c.calls++
	if c.calls == 1 {
		c.cancel()
		return nil, ctx.Err()
	}
	return c.img, nil
}

func TestRender_InterruptedIconIsNotCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	icons := &cancelingIcons{img: image.NewRGBA(image.Rect(0, 0, 4, 4)), cancel: cancel}
	r := newTestRenderer(t, icons)

	sectors := []model.Prize{{ID: 1, Name: "Cooler", Icon: "cooler.png", Color: "#ffffff"}}
	_, _ = r.Render(ctx, sectors, 0)

	for i := 0; i < 3; i++ {
		if _, err := r.Render(context.Background(), sectors, 0); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if icons.calls != 2 {
		t.Fatalf("unexpected icon fetches: got=%d want=2", icons.calls)
	}
	r.mu.Lock()
	e, ok := r.iconCache["cooler.png"]
	r.mu.Unlock()
	if !ok || !e.ok {
		t.Fatalf("icon should be cached after a completed fetch: got=%+v present=%v", e, ok)
	}
}

// blockingIcons holds every fetch until release is closed.
type blockingIcons struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingIcons) Icon(ctx context.Context, _ string) (image.Image, error) {
	b.once.Do(func() { close(b.entered) })
	select {
	case <-b.release:
		return nil, errors.New("not found")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestRender_SlowIconDoesNotBlockOtherRenders(t *testing.T) {
	icons := &blockingIcons{entered: make(chan struct{}), release: make(chan struct{})}
	r := newTestRenderer(t, icons)
	defer close(icons.release)

	slow := []model.Prize{{ID: 1, Name: "Cooler", Icon: "slow.png", Color: "#ffffff"}}
	go func() { _, _ = r.Render(context.Background(), slow, 0) }()
	<-icons.entered

	done := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), twoSectors(), 0)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("render without icons waited on a pending icon fetch")
	}
}

func TestEncodePNG(t *testing.T) {
	r := newTestRenderer(t, nil)
	img, err := r.Render(context.Background(), twoSectors(), 45)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("unexpected bounds: got=%v want=%v", decoded.Bounds(), img.Bounds())
	}
}

func TestSplitLabel(t *testing.T) {
	cases := []struct {
		in, l1, l2 string
	}{
		{"Caderno", "Caderno", ""},
		{"Fone de ouvido", "Fone de", "ouvido"},
		{"Copo Térmico", "Copo", "Térmico"},
		{"a b c d", "a b", "c d"},
		{"  ", "", ""},
	}
	for _, c := range cases {
		l1, l2 := SplitLabel(c.in)
		if l1 != c.l1 || l2 != c.l2 {
			t.Fatalf("unexpected split of %q: got=(%q,%q) want=(%q,%q)", c.in, l1, l2, c.l1, c.l2)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#f00":      {R: 0xff, A: 0xff},
		"#00ff00":   {G: 0xff, A: 0xff},
		"#0000ffff": {B: 0xff, A: 0xff},
		"#ffffff00": {},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("unexpected color for %q: got=%v want=%v", in, got, want)
		}
	}
	for _, bad := range []string{"", "red", "#12", "#zzzzzz"} {
		got, err := ParseColor(bad)
		if err == nil {
			t.Fatalf("expected error for %q", bad)
		}
		if got != Grey {
			t.Fatalf("invalid color must fall back to grey: got=%v", got)
		}
	}
}

func TestTextColor(t *testing.T) {
	r := newTestRenderer(t, nil)
	if got := r.TextColor("#ffffff"); got != "#172554" {
		t.Fatalf("unexpected text color on white: %s", got)
	}
	if got := r.TextColor("#172554"); got != "#ffffff" {
		t.Fatalf("unexpected text color on navy: %s", got)
	}
	if Hex(red) != "#ff0000" {
		t.Fatalf("unexpected hex: %s", Hex(red))
	}
}
