// Package raster is a software backend for the render pipeline. It draws
// mannequins into an in-memory colour and depth buffer so frames can be
// produced without a GPU, for snapshots and tests.
package raster

import (
	"image"
	gomath "math"
)

// FrameBuffer holds the render target as flat slices.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // premultiplied RGBA, len = W*H*4
	Depth  []float32 // NDC depth per pixel, smaller is nearer
}

// NewFrameBuffer allocates a buffer cleared to transparent black and far depth.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear([4]float32{})
	return fb
}

// Clear fills colour with c (straight alpha) and resets depth.
func (fb *FrameBuffer) Clear(c [4]float32) {
	px := premultiply(c)
	for i := 0; i < len(fb.Color); i += 4 {
		copy(fb.Color[i:i+4], px[:])
	}
	inf := float32(gomath.Inf(1))
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// RGBA wraps the colour buffer as an image without copying.
func (fb *FrameBuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

func premultiply(c [4]float32) [4]uint8 {
	a := clamp01(c[3])
	return [4]uint8{
		to8(c[0] * a),
		to8(c[1] * a),
		to8(c[2] * a),
		to8(a),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
