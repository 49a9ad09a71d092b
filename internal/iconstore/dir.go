package iconstore

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
)

// Dir reads icons from files under Root. References cannot escape Root.
type Dir struct {
	Root string
}

func (d Dir) Icon(_ context.Context, ref string) (image.Image, error) {
	name := strings.TrimPrefix(strings.TrimPrefix(ref, "file://"), "/")
	f, err := os.OpenInRoot(d.Root, name)
	if err != nil {
		return nil, fmt.Errorf("open icon %q: %w", ref, err)
	}
	defer f.Close()
	return decode(ref, f)
}
