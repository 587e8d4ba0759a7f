package models

// BlockType is the shape of the masked canvas region
type BlockType string

const (
	BlockTypeCircle BlockType = "circle"
	BlockTypeSquare BlockType = "square"
)

// Block is a masked region overlaid on the canvas for one round.
// Coordinates and size are percentages of the canvas.
type Block struct {
	Type BlockType `json:"type"`
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Size int       `json:"size"`
}
