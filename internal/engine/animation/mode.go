// Package animation drives the per-mannequin pose state machine.
package animation

import (
	"fmt"
	"strings"
)

// Mode is an animation mode.
type Mode int

const (
	Idle Mode = iota
	Walk
	Turn
	Wave
	Pose
)

// Modes lists every mode in display order.
var Modes = []Mode{Idle, Walk, Turn, Wave, Pose}

var modeNames = [...]string{"idle", "walk", "turn", "wave", "pose"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown animation mode %q", s)
}

// speed is the playback rate applied to wall-clock time.
func (m Mode) speed() float64 {
	switch m {
	case Idle:
		return 1.0
	case Walk:
		return 1.5
	case Turn:
		return 0.5
	case Wave:
		return 1.2
	}
	return 0
}

// period is the cycle length in mode time; 0 means the mode never cycles.
func (m Mode) period() float64 {
	switch m {
	case Idle:
		return 3
	case Walk:
		return 2
	case Turn:
		return 4
	case Wave:
		return 2
	}
	return 0
}
