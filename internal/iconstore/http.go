package iconstore

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTP fetches icons by http or https URL.
type HTTP struct {
	Client *http.Client
}

func NewHTTP() *HTTP {
	return &HTTP{Client: &http.Client{Timeout: defaultHTTPTimeout}}
}

func (h *HTTP) Icon(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("icon request %q: %w", ref, err)
	}
	res, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon %q: %w", ref, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch icon %q: status %d", ref, res.StatusCode)
	}
	return decode(ref, res.Body)
}
