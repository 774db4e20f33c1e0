package grid

import "github.com/jakecoffman/cp"

// CellRect is a rectangular run of cells [Col, Col+W) x [Row, Row+H).
type CellRect struct {
	Col, Row int
	W, H     int
}

// Rects merges contiguous cells carrying tag into rectangles, expanding
// greedily along the row first and then downward.
func (g *Grid) Rects(tag Tag) []CellRect {
	w, h := g.Width(), g.Height()
	processed := make([]bool, w*h)
	var out []CellRect

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if processed[idx] {
				continue
			}
			if g.cells[y][x] != tag {
				processed[idx] = true
				continue
			}

			rw := 1
			for x+rw < w {
				if processed[y*w+x+rw] || g.cells[y][x+rw] != tag {
					break
				}
				rw++
			}

			rh := 1
		heightLoop:
			for y+rh < h {
				for xi := x; xi < x+rw; xi++ {
					if processed[(y+rh)*w+xi] || g.cells[y+rh][xi] != tag {
						break heightLoop
					}
				}
				rh++
			}

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*w+xx] = true
				}
			}
			out = append(out, CellRect{Col: x, Row: y, W: rw, H: rh})
		}
	}
	return out
}

// RectBB converts r into a world-space box.
func (g *Grid) RectBB(r CellRect) cp.BB {
	x0 := g.Origin.X + float64(r.Col)*g.CellSize
	y0 := g.Origin.Y + float64(r.Row)*g.CellSize
	return cp.BB{L: x0, B: y0, R: x0 + float64(r.W)*g.CellSize, T: y0 + float64(r.H)*g.CellSize}
}
