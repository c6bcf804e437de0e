package picker

// Rect is a rectangle in screen cells, origin top-left.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bottom returns the first row below r.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Right returns the first column right of r.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport is the visible area the popup must fit in.
type Viewport struct {
	Width  int
	Height int
}

// Placement carries the geometry needed to decide where a popup opens.
type Placement struct {
	Trigger     Rect
	Viewport    Viewport
	PopupHeight int
	Margin      int
}

// SpaceAbove returns the rows available above the trigger.
func (p Placement) SpaceAbove() int {
	return p.Trigger.Y
}

// SpaceBelow returns the rows available below the trigger.
func (p Placement) SpaceBelow() int {
	return p.Viewport.Height - p.Trigger.Bottom()
}

// Above reports whether the popup should open above its trigger: only when
// it does not fit below and does fit above. Otherwise it opens below, even if
// it is clipped there.
func (p Placement) Above() bool {
	need := p.PopupHeight + p.Margin
	return p.SpaceBelow() < need && p.SpaceAbove() >= need
}
