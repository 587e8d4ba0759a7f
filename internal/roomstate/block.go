package roomstate

import (
	"github.com/KirkDiggler/sketchparty/internal/models"
)

const (
	circleMinSize = 15
	circleMaxSize = 25
	squareMinSize = 30
	squareMaxSize = 50

	// circles are centred somewhere in the inner 50% of the canvas
	innerMin = 25
	innerMax = 75
)

// GenerateBlock picks this round's masked region: one time in four a circle
// centred in the inner area, otherwise a square snapped to a corner.
// Circle X/Y is the centre, square X/Y is the top-left corner, all in percent.
func (m *Machine) GenerateBlock() models.Block {
	if m.roller.Roll(4) == 1 {
		return models.Block{
			Type: models.BlockTypeCircle,
			X:    m.between(innerMin, innerMax),
			Y:    m.between(innerMin, innerMax),
			Size: m.between(circleMinSize, circleMaxSize),
		}
	}

	size := m.between(squareMinSize, squareMaxSize)
	block := models.Block{Type: models.BlockTypeSquare, Size: size}

	switch m.roller.Roll(4) {
	case 1: // top left
	case 2:
		block.X = 100 - size
	case 3:
		block.Y = 100 - size
	default:
		block.X = 100 - size
		block.Y = 100 - size
	}

	return block
}

// between returns a value in [lo, hi]
func (m *Machine) between(lo, hi int) int {
	return lo + m.roller.Roll(hi-lo+1) - 1
}
