package pixel

// Palette is an ordered list of colors
type Palette []Color

// BuildPalette collects the distinct colors of pix in first-seen order and
// returns the palette together with the palette index of every pixel.
func BuildPalette(pix []Color) (Palette, []int) {
	palette := make(Palette, 0)
	lookup := make(map[Color]int)
	indices := make([]int, len(pix))
	for i, c := range pix {
		idx, ok := lookup[c]
		if !ok {
			idx = len(palette)
			lookup[c] = idx
			palette = append(palette, c)
		}
		indices[i] = idx
	}
	return palette, indices
}

// Lookup returns the color at index i
func (p Palette) Lookup(i int) (Color, bool) {
	if i < 0 || i >= len(p) {
		return Color{}, false
	}
	return p[i], true
}
