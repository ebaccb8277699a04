package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// clickSlop is how far, in pixels, the pointer may travel between press and
// release and still count as a click rather than a drag.
const clickSlop = 4

// Interaction is what the pointer did over a scene view in one frame.
type Interaction struct {
	Hovered bool
	DragX   float32
	DragY   float32
	Wheel   float32
	Clicked bool
	ClickX  float32 // relative to the image's top-left corner
	ClickY  float32
}

// SceneView shows a framebuffer texture and turns pointer activity over it
// into drag, wheel and click interactions.
type SceneView struct {
	pressed  bool
	inside   bool
	pressAt  [2]float32
	last     [2]float32
	traveled float32
}

// Draw displays texture at the given size, flipped for GL's bottom-left
// origin, and returns this frame's interaction.
func (v *SceneView) Draw(texture uint32, width, height float32) Interaction {
	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
	imgui.ImageV(*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0))

	mouse := imgui.MousePos()
	return v.step(
		imgui.IsItemHovered(),
		imgui.IsMouseDown(imgui.MouseButtonLeft),
		[2]float32{mouse.X - origin.X, mouse.Y - origin.Y},
		imgui.CurrentIO().MouseWheel(),
	)
}

// step advances the pointer state machine. Drags continue outside the
// image once they started inside it.
func (v *SceneView) step(hovered, down bool, pos [2]float32, wheel float32) Interaction {
	out := Interaction{Hovered: hovered}
	if hovered {
		out.Wheel = wheel
	}

	switch {
	case down && !v.pressed:
		v.pressed = true
		v.inside = hovered
		v.pressAt = pos
		v.traveled = 0
	case down && v.pressed && v.inside:
		dx, dy := pos[0]-v.last[0], pos[1]-v.last[1]
		out.DragX, out.DragY = dx, dy
		v.traveled += abs(dx) + abs(dy)
	case !down && v.pressed:
		if v.inside && hovered && v.traveled <= clickSlop {
			out.Clicked = true
			out.ClickX, out.ClickY = v.pressAt[0], v.pressAt[1]
		}
		v.pressed = false
		v.inside = false
	}
	v.last = pos
	return out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
