package animation

import gomath "math"

// PoseParams is the pose of one mannequin at an instant: a body yaw and
// vertical offset applied to the whole model, plus limb swing angles.
// Angles are in degrees, the offset in world units.
type PoseParams struct {
	BodyYaw        float32
	VerticalOffset float32
	LeftArm        float32
	RightArm       float32
	LeftLeg        float32
	RightLeg       float32
}

// Controller tracks the mode and elapsed mode time of one mannequin.
// It is not safe for concurrent use; the render loop owns it.
type Controller struct {
	mode    Mode
	elapsed float64
	playing bool
}

// New returns a playing controller in Idle.
func New() *Controller {
	return &Controller{mode: Idle, playing: true}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Elapsed returns the mode time in seconds.
func (c *Controller) Elapsed() float64 { return c.elapsed }

// Playing reports whether Update advances time.
func (c *Controller) Playing() bool { return c.playing }

// SetMode switches mode and restarts the cycle. Selecting the current mode
// keeps its progress.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	c.mode = m
	c.elapsed = 0
}

// Play resumes time.
func (c *Controller) Play() { c.playing = true }

// Pause freezes time; Pose keeps returning the frozen pose.
func (c *Controller) Pause() { c.playing = false }

// Reset returns to Idle at time zero. Playback state is left alone.
func (c *Controller) Reset() {
	c.mode = Idle
	c.elapsed = 0
}

// Update advances the mode clock by dt seconds of wall time.
func (c *Controller) Update(dt float64) {
	if !c.playing {
		return
	}
	c.advance(dt * c.mode.speed())
}

// advance adds mode time and applies the loop policy: cyclic modes wrap,
// Wave plays once and falls back to Idle.
func (c *Controller) advance(t float64) {
	c.elapsed += t

	period := c.mode.period()
	if period == 0 || c.elapsed < period {
		return
	}
	if c.mode == Wave {
		c.mode = Idle
		c.elapsed = 0
		return
	}
	c.elapsed = gomath.Mod(c.elapsed, period)
}

// Pose computes the pose for the current mode and time.
func (c *Controller) Pose() PoseParams {
	t := c.elapsed
	var p PoseParams

	switch c.mode {
	case Idle:
		p.BodyYaw = float32(3 * gomath.Sin(2*gomath.Pi*2*t/3))
		p.VerticalOffset = float32(0.01 * gomath.Sin(2*gomath.Pi*3*t/3))
	case Walk:
		p.VerticalOffset = float32(0.05 * gomath.Sin(2*gomath.Pi*4*t/2))
		swing := gomath.Sin(2 * gomath.Pi * 2 * t / 2)
		p.LeftArm = float32(30 * swing)
		p.RightArm = -p.LeftArm
		p.LeftLeg = float32(25 * swing)
		p.RightLeg = -p.LeftLeg
	case Turn:
		p.BodyYaw = float32(t / 4 * 360)
	case Wave:
		if t < 1 {
			p.LeftArm = float32(45*gomath.Sin(4*gomath.Pi*t) + 45)
		}
	case Pose:
	}
	return p
}
