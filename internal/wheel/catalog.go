package wheel

import (
	"fmt"
	"slices"

	"prize_wheel/internal/model"
)

// SectorMode decides which loaded prizes become wheel sectors.
type SectorMode string

const (
	// SectorsAll renders every loaded prize; only spinnable ones can win.
	SectorsAll       SectorMode = "all"
	// SectorsSpinnable renders exactly the spinnable set.
	SectorsSpinnable SectorMode = "spinnable"
)

func ParseSectorMode(s string) (SectorMode, error) {
	switch SectorMode(s) {
	case "", SectorsAll:
		return SectorsAll, nil
	case SectorsSpinnable:
		return SectorsSpinnable, nil
	default:
		return "", fmt.Errorf("unknown sector mode %q", s)
	}
}

// notListed is the sort position of names missing from the canonical order.
const notListed = -1

// SortPrizes orders prizes by the position of their name in order. Names not in
// order share position -1 and so come first; ties keep their relative order.
// The input slice is not modified.
func SortPrizes(prizes []model.Prize, order []string) []model.Prize {
	out := slices.Clone(prizes)
	pos := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := pos[name]; !ok {
			pos[name] = i
		}
	}
	rank := func(p model.Prize) int {
		if i, ok := pos[p.Name]; ok {
			return i
		}
		return notListed
	}
	slices.SortStableFunc(out, func(a, b model.Prize) int {
		return rank(a) - rank(b)
	})
	return out
}

// Catalog is the ordered prize list shared by the renderer and the selector.
// Sectors and Spinnable are derived from the same ordered list so sector indexes
// line up.
type Catalog struct {
	Mode      SectorMode
	all       []model.Prize
	Sectors   []model.Prize
	Spinnable []model.Prize
}

// NewCatalog builds a catalog from prizes already in display order.
func NewCatalog(prizes []model.Prize, mode SectorMode) Catalog {
	c := Catalog{Mode: mode, all: slices.Clone(prizes)}
	c.derive()
	return c
}

func (c *Catalog) derive() {
	c.Spinnable = make([]model.Prize, 0, len(c.all))
	for _, p := range c.all {
		if p.Spinnable() {
			c.Spinnable = append(c.Spinnable, p)
		}
	}
	if c.Mode == SectorsSpinnable {
		c.Sectors = slices.Clone(c.Spinnable)
	} else {
		c.Sectors = slices.Clone(c.all)
	}
}

// IndexOf returns the sector index of the prize with id, or -1.
func (c Catalog) IndexOf(id int) int {
	return slices.IndexFunc(c.Sectors, func(p model.Prize) bool { return p.ID == id })
}

// Find returns the loaded prize with id, whether or not it is a sector.
func (c Catalog) Find(id int) (model.Prize, bool) {
	i := slices.IndexFunc(c.all, func(p model.Prize) bool { return p.ID == id })
	if i < 0 {
		return model.Prize{}, false
	}
	return c.all[i], true
}

// With returns a copy of the catalog with the loaded prize of the same id
// replaced. Unknown ids leave the catalog unchanged.
func (c Catalog) With(p model.Prize) (Catalog, bool) {
	i := slices.IndexFunc(c.all, func(q model.Prize) bool { return q.ID == p.ID })
	if i < 0 {
		return c, false
	}
	next := Catalog{Mode: c.Mode, all: slices.Clone(c.all)}
	next.all[i] = p
	next.derive()
	return next, true
}
