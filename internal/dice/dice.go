package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/sketchparty/internal/dice Roller

// Roller is the non-cryptographic randomness behind blocks, saboteurs and room codes
type Roller interface {
	// Roll returns a value between 1 and sides inclusive
	Roll(sides int) int
}

// DefaultRoller provides dice rolling functionality
type DefaultRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
