package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"prize_wheel/internal/model"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	iconSize      = 60
	labelRadius   = 0.7
	hubRadius     = 0.1
	ringWidth     = 30
	hubOutlineGap = 3
	line1Baseline = 50
	line2Baseline = 70
	arcStep       = 2.0 // degrees per path segment
)

// IconSource resolves a prize icon reference to an image.
type IconSource interface {
	Icon(ctx context.Context, ref string) (image.Image, error)
}

type Config struct {
	Size            int
	FontSize        float64
	LabelColor      string
	LightLabelColor string
	RingColor       string
	HubColor        string
}

func DefaultConfig() Config {
	return Config{
		Size:            500,
		FontSize:        16,
		LabelColor:      "#172554",
		LightLabelColor: "#ffffff",
		RingColor:       "#000000",
		HubColor:        "#292929",
	}
}

// ErrInvalidRotation is returned for NaN or infinite rotations.
var ErrInvalidRotation = errors.New("rotation must be a finite number")

type iconEntry struct {
	img image.Image
	ok  bool
}

// Renderer paints the wheel. Safe for concurrent use.
type Renderer struct {
	size       int
	icons      IconSource
	face       font.Face
	label      color.RGBA
	lightLabel color.RGBA
	ring       color.RGBA
	hub        color.RGBA

	// faceMu serializes text drawing; opentype faces keep scratch buffers.
	faceMu sync.Mutex

	mu        sync.Mutex
	iconCache map[string]iconEntry
}

// New builds a renderer. icons may be nil, in which case labels are drawn
// without icons.
func New(cfg Config, icons IconSource) (*Renderer, error) {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}

	return &Renderer{
		size:       cfg.Size,
		icons:      icons,
		face:       face,
		label:      configColor(cfg.LabelColor, def.LabelColor),
		lightLabel: configColor(cfg.LightLabelColor, def.LightLabelColor),
		ring:       configColor(cfg.RingColor, def.RingColor),
		hub:        configColor(cfg.HubColor, def.HubColor),
		iconCache:  make(map[string]iconEntry),
	}, nil
}

func configColor(s, fallback string) color.RGBA {
	if s == "" {
		s = fallback
	}
	return fillColor(s)
}

func fillColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		logger.L().Warn("bad color, using grey", zap.String("color", s), zap.Error(err))
	}
	return c
}

func (r *Renderer) Size() int { return r.size }

// TextColor is the label color used on a sector filled with fill, as #rrggbb.
func (r *Renderer) TextColor(fill string) string {
	return Hex(r.textColor(fillColor(fill)))
}

func (r *Renderer) textColor(fill color.RGBA) color.Color {
	return TextColorFor(fill, r.label, r.lightLabel)
}

// Render paints sectors rotated clockwise by rotation degrees. Sector 0 starts
// at the top. An empty sector list gives a transparent image.
func (r *Renderer) Render(ctx context.Context, sectors []model.Prize, rotation float64) (*image.RGBA, error) {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return nil, ErrInvalidRotation
	}
	rotation = math.Mod(rotation, 360)

	img := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	if len(sectors) == 0 {
		return img, nil
	}

	c := float64(r.size) / 2
	radius := c - 2
	step := 360 / float64(len(sectors))

	for i, p := range sectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := rotation - 90 + float64(i)*step
		fill := fillColor(p.Color)
		r.fillPath(img, fill, func(z *vector.Rasterizer) {
			z.MoveTo(float32(c), float32(c))
			arc(z, c, c, radius, start, start+step)
			z.ClosePath()
		})
	}

	for i, p := range sectors {
		mid := float64(i)*step + step/2
		r.drawLabel(ctx, img, p, c, radius, rotation, mid)
	}

	r.fillPath(img, r.ring, func(z *vector.Rasterizer) {
		circle(z, c, c, radius, false)
		circle(z, c, c, radius-ringWidth, true)
	})

	hr := radius * hubRadius
	r.fillPath(img, r.ring, func(z *vector.Rasterizer) {
		circle(z, c, c, hr+hubOutlineGap+0.5, false)
		circle(z, c, c, hr+hubOutlineGap-0.5, true)
	})
	r.fillPath(img, r.hub, func(z *vector.Rasterizer) {
		circle(z, c, c, hr, false)
	})

	return img, nil
}

func (r *Renderer) fillPath(dst *image.RGBA, col color.Color, path func(z *vector.Rasterizer)) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	path(z)
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// drawLabel paints the icon and the two text lines on a tile, then places the
// tile at 70% of the radius on the sector bisector, turned to face outward.
func (r *Renderer) drawLabel(ctx context.Context, dst *image.RGBA, p model.Prize, c, radius, rotation, mid float64) {
	icon := r.icon(ctx, p.Icon)

	r.faceMu.Lock()
	defer r.faceMu.Unlock()

	line1, line2 := SplitLabel(p.Name)
	d := font.Drawer{Face: r.face}
	w1, w2 := d.MeasureString(line1).Ceil(), d.MeasureString(line2).Ceil()
	w := max(iconSize, w1, w2) + 4
	descent := r.face.Metrics().Descent.Ceil()
	h := iconSize/2 + line2Baseline + descent + 2

	// Tile origin (0,0) in sector coordinates sits at pixel (w/2, iconSize/2).
	ox, oy := float64(w)/2, float64(iconSize)/2
	tile := image.NewRGBA(image.Rect(0, 0, w, h))

	if icon != nil {
		rect := image.Rect(w/2-iconSize/2, 0, w/2+iconSize/2, iconSize)
		draw.BiLinear.Scale(tile, rect, icon, icon.Bounds(), draw.Over, nil)
	}

	d.Dst = tile
	d.Src = image.NewUniform(r.textColor(fillColor(p.Color)))
	d.Dot = fixed.P((w-w1)/2, iconSize/2+line1Baseline)
	d.DrawString(line1)
	if line2 != "" {
		d.Dot = fixed.P((w-w2)/2, iconSize/2+line2Baseline)
		d.DrawString(line2)
	}

	theta := (rotation - 90 + mid) * math.Pi / 180
	ax := c + labelRadius*radius*math.Cos(theta)
	ay := c + labelRadius*radius*math.Sin(theta)

	phi := (rotation + mid) * math.Pi / 180
	sin, cos := math.Sincos(phi)
	s2d := f64.Aff3{
		cos, -sin, ax - cos*ox + sin*oy,
		sin, cos, ay - sin*ox - cos*oy,
	}
	draw.BiLinear.Transform(dst, s2d, tile, tile.Bounds(), draw.Over, nil)
}

// icon returns the cached icon for ref, fetching it without holding the cache
// lock. Failures are logged once and cached as missing, except when the
// caller's context ended, which says nothing about the icon.
func (r *Renderer) icon(ctx context.Context, ref string) image.Image {
	if ref == "" || r.icons == nil {
		return nil
	}
	r.mu.Lock()
	e, ok := r.iconCache[ref]
	r.mu.Unlock()
	if ok {
		return e.img
	}

	img, err := r.icons.Icon(ctx, ref)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.L().Debug("icon fetch interrupted", zap.String("icon", ref), zap.Error(err))
			return nil
		}
		logger.L().Warn("icon unavailable, drawing label only", zap.String("icon", ref), zap.Error(err))
		img = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.iconCache[ref]; ok {
		return e.img
	}
	r.iconCache[ref] = iconEntry{img: img, ok: img != nil}
	return img
}

// ForgetIcons drops cached icons so the next render fetches them again.
func (r *Renderer) ForgetIcons() {
	r.mu.Lock()
	clear(r.iconCache)
	r.mu.Unlock()
}

// arc appends line segments along a circle from a0 to a1 degrees, clockwise in
// image coordinates.
func arc(z *vector.Rasterizer, cx, cy, radius, a0, a1 float64) {
	n := int(math.Ceil((a1 - a0) / arcStep))
	if n < 1 {
		n = 1
	}
	for j := 0; j <= n; j++ {
		a := (a0 + (a1-a0)*float64(j)/float64(n)) * math.Pi / 180
		z.LineTo(float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a)))
	}
}

// circle adds a closed circle; reverse winds it the other way so it cuts a
// hole in an enclosing circle.
func circle(z *vector.Rasterizer, cx, cy, radius float64, reverse bool) {
	a0, a1 := 0.0, 360.0
	if reverse {
		a0, a1 = 360, 0
	}
	z.MoveTo(float32(cx+radius), float32(cy))
	n := int(360 / arcStep)
	for j := 1; j <= n; j++ {
		a := (a0 + (a1-a0)*float64(j)/float64(n)) * math.Pi / 180
		z.LineTo(float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a)))
	}
	z.ClosePath()
}

// EncodePNG writes img as PNG tuned for per-frame encoding.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
