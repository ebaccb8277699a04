package raster

// Vertex is a vertex after projection to pixel coordinates.
type Vertex struct {
	X, Y float32 // pixels, origin top-left
	Z    float32 // NDC depth
	C    [4]float32
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// SignedArea is twice the screen-space area of a triangle. With Y pointing
// down, counter-clockwise triangles in NDC come out negative.
func SignedArea(a, b, c Vertex) float32 {
	return edge(a.X, a.Y, b.X, b.Y, c.X, c.Y)
}

// Triangle fills a triangle with depth test, interpolating colour and depth
// across it. Pixels are sampled at their centres.
func (fb *FrameBuffer) Triangle(a, b, c Vertex) {
	area := SignedArea(a, b, c)
	if area > -1e-8 && area < 1e-8 {
		return
	}
	inv := 1 / area

	minX := max(int(min(a.X, b.X, c.X)), 0)
	maxX := min(int(max(a.X, b.X, c.X))+1, fb.Width-1)
	minY := max(int(min(a.Y, b.Y, c.Y)), 0)
	maxY := min(int(max(a.Y, b.Y, c.Y))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		row := y * fb.Width
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b.X, b.Y, c.X, c.Y, px, py) * inv
			w1 := edge(c.X, c.Y, a.X, a.Y, px, py) * inv
			w2 := edge(a.X, a.Y, b.X, b.Y, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			i := row + x
			if z >= fb.Depth[i] {
				continue
			}
			fb.Depth[i] = z

			var col [4]float32
			for k := range col {
				col[k] = w0*a.C[k] + w1*b.C[k] + w2*c.C[k]
			}
			px8 := premultiply(col)
			copy(fb.Color[i*4:i*4+4], px8[:])
		}
	}
}
