// Package framebuffer provides an offscreen OpenGL render target used by the
// studio viewport and for GPU snapshots.
package framebuffer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is a colour texture plus depth renderbuffer.
type Framebuffer struct {
	fbo      uint32
	color    uint32
	depth    uint32
	width    int32
	height   int32
	restore  func()
	attached bool
}

// New creates a framebuffer of at least 1x1 pixels.
func New(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{width: atLeastOne(width), height: atLeastOne(height)}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.GenTextures(1, &fb.color)
	gl.GenRenderbuffers(1, &fb.depth)
	fb.allocate()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("creating framebuffer: incomplete 0x%x", status)
	}
	return fb, nil
}

func atLeastOne(v int) int32 {
	if v < 1 {
		return 1
	}
	return int32(v)
}

// allocate (re)sizes both attachments to the current dimensions.
func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
}

// Begin makes the framebuffer the render target and sets the viewport to
// its size. End restores the previous target and viewport.
func (fb *Framebuffer) Begin() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)

	fb.restore = func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
	fb.attached = true
}

// End restores the state saved by Begin.
func (fb *Framebuffer) End() {
	if !fb.attached {
		return
	}
	fb.restore()
	fb.restore = nil
	fb.attached = false
}

// Texture returns the colour attachment, for display in an ImGui image.
func (fb *Framebuffer) Texture() uint32 {
	return fb.color
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return int(fb.width), int(fb.height)
}

// Resize reallocates the attachments when the dimensions change.
func (fb *Framebuffer) Resize(width, height int) bool {
	w, h := atLeastOne(width), atLeastOne(height)
	if w == fb.width && h == fb.height {
		return false
	}
	fb.width, fb.height = w, h
	fb.allocate()
	return true
}

// Image reads the colour attachment back into a top-down RGBA image.
func (fb *Framebuffer) Image() *image.RGBA {
	w, h := int(fb.width), int(fb.height)
	pixels := make([]byte, w*h*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return FlipRows(pixels, w, h)
}

// FlipRows copies bottom-up RGBA rows, as GL reads them, into a top-down image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
		fb.color = 0
	}
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
		fb.depth = 0
	}
}
