// Package scene renders the Micro-CT geometry viewer and the textured plane
// demo to images.
//
// The interactive programs kept their camera angles, toggles and speeds in
// globals mutated by GLUT callbacks. Here that is a State value; the
// callbacks are methods on it, and a render loop calls Tick once per frame.
package scene

import "fmt"

type Quality int

const (
	Draft Quality = iota
	Medium
	Best
)

func (q Quality) String() string {
	switch q {
	case Draft:
		return "draft"
	case Medium:
		return "medium"
	case Best:
		return "best"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality clamps n into [Draft, Best].
func ParseQuality(n int) Quality {
	return Quality(min(max(n, int(Draft)), int(Best)))
}

// Key is a non character key.
type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
)

// Action tells the render loop what to do after a handler ran.
type Action int

const (
	None Action = iota
	Quit
)

const (
	mainMenuSpin   = 1
	mainMenuBounce = 2
	mainMenuQuit   = 100
)

type State struct {
	Quality Quality
	// Spin advances Azimuth on every Tick.
	Spin bool
	// Direction of the spin, +1 or -1.
	Direction int
	// Elevation and Azimuth place the eye, in degrees.
	Elevation float64
	Azimuth   float64
	Bounce    bool
	Speed     float64
	// Distance of the eye from the origin.
	Distance float64
	// Step is the azimuth increment per Tick.
	Step float64
}

// NewCTState returns the initial state of the geometry viewer.
func NewCTState() *State {
	return &State{
		Quality:   Draft,
		Spin:      true,
		Direction: 1,
		Elevation: 60,
		Bounce:    true,
		Speed:     2,
		Distance:  200,
		Step:      0.2,
	}
}

// NewPlaneState returns the initial state of the textured plane demo.
func NewPlaneState() *State {
	return &State{
		Quality:   Best,
		Spin:      true,
		Direction: 1,
		Elevation: 60,
		Speed:     2,
		Distance:  300,
		Step:      0.2,
	}
}

func (s *State) HandleKey(key rune) Action {
	switch key {
	case 27, 'q', 'Q':
		return Quit
	case 's', 'S':
		s.Spin = !s.Spin
	case 'b', 'B':
		s.Bounce = !s.Bounce
	}
	return None
}

// HandleKeys replays a string of key strokes and stops at the first Quit.
func (s *State) HandleKeys(keys string) Action {
	for _, k := range keys {
		if s.HandleKey(k) == Quit {
			return Quit
		}
	}
	return None
}

func (s *State) HandleSpecial(key Key) Action {
	switch key {
	case KeyLeft:
		s.Direction = -1
	case KeyRight:
		s.Direction = 1
	case KeyUp:
		s.Elevation -= 2
	case KeyDown:
		s.Elevation += 2
	}
	return None
}

func (s *State) HandleMainMenu(entry int) Action {
	switch entry {
	case mainMenuSpin:
		s.Spin = !s.Spin
	case mainMenuBounce:
		s.Bounce = !s.Bounce
	case mainMenuQuit:
		return Quit
	}
	return None
}

func (s *State) HandleSpeedMenu(entry int) Action {
	switch entry {
	case 1:
		s.Speed = 0.5
	case 2:
		s.Speed = 2
	case 3:
		s.Speed = 10
	}
	return None
}

// Tick advances the camera by one frame.
func (s *State) Tick() {
	if s.Spin {
		s.Azimuth += float64(s.Direction) * s.Step
	}
}
