package model

// Prize is one row of the remote prizes table.
type Prize struct {
	ID       int
	Icon     string
	Name     string
	Quantity int
	Color    string
	IsActive bool
}

// Spinnable reports whether the prize may be the outcome of a spin.
func (p Prize) Spinnable() bool {
	return p.IsActive && p.Quantity > 0
}

// PrizePatch is a partial admin edit. Nil fields are left unchanged.
type PrizePatch struct {
	Quantity *int
	IsActive *bool
}

// Apply returns p with the patch fields applied.
func (pp PrizePatch) Apply(p Prize) Prize {
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
	return p
}

// Empty reports whether the patch changes nothing.
func (pp PrizePatch) Empty() bool {
	return pp.Quantity == nil && pp.IsActive == nil
}

type PrizeEdit struct {
	ID    int
	Patch PrizePatch
}
