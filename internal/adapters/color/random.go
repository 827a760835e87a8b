package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RandomAssigner hands out random saturated colors as #rrggbb strings.
// Two habits may end up with the same color.
type RandomAssigner struct{}

func NewRandomAssigner() *RandomAssigner {
	return &RandomAssigner{}
}

func (RandomAssigner) Assign() string {
	return colorful.HappyColor().Hex()
}
