// Package iconstore resolves prize icon references to decoded images.
package iconstore

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"

	_ "golang.org/x/image/webp"
)

var ErrNoSource = errors.New("no icon source for reference")

// Source resolves one icon reference.
type Source interface {
	Icon(ctx context.Context, ref string) (image.Image, error)
}

func decode(ref string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode icon %q: %w", ref, err)
	}
	return img, nil
}

// Mux picks a source by the scheme of the reference. References without a
// scheme go to Default.
type Mux struct {
	Schemes map[string]Source
	Default Source
}

func (m *Mux) Icon(ctx context.Context, ref string) (image.Image, error) {
	src := m.Default
	if scheme := schemeOf(ref); scheme != "" {
		s, ok := m.Schemes[scheme]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoSource, ref)
		}
		src = s
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSource, ref)
	}
	return src.Icon(ctx, ref)
}

func schemeOf(ref string) string {
	if !strings.Contains(ref, "://") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}
