package session

import "fmt"

// Default role/round configuration: three rounds, opening meetings in the
// first two, closing meetings in the last two, three meetings of each role
// per mentor at most.
const (
	DefaultRounds         = 3
	DefaultMaxOSPerMentor = 3
	DefaultMaxOCPerMentor = 3
)

// Config defines the role/round structure of a session. It is caller
// supplied; nothing in the engine hardcodes round numbers.
type Config struct {
	Rounds         int   `json:"rounds" yaml:"rounds"`
	OSRounds       []int `json:"os_rounds" yaml:"os_rounds"`
	OCRounds       []int `json:"oc_rounds" yaml:"oc_rounds"`
	MaxOSPerMentor int   `json:"max_os_per_mentor" yaml:"max_os_per_mentor"`
	MaxOCPerMentor int   `json:"max_oc_per_mentor" yaml:"max_oc_per_mentor"`
}

// DefaultConfig returns the standard three-round session layout.
func DefaultConfig() Config {
	return Config{
		Rounds:         DefaultRounds,
		OSRounds:       []int{1, 2},
		OCRounds:       []int{2, 3},
		MaxOSPerMentor: DefaultMaxOSPerMentor,
		MaxOCPerMentor: DefaultMaxOCPerMentor,
	}
}

// OSCapacity returns the per-table opening-meeting capacity implied by the
// eligible round set.
func (c Config) OSCapacity() int { return len(c.OSRounds) }

// OCCapacity returns the per-table closing-meeting capacity implied by the
// eligible round set.
func (c Config) OCCapacity() int { return len(c.OCRounds) }

// SharedRounds returns the rounds eligible for both roles, in ascending
// round order.
func (c Config) SharedRounds() []int {
	var shared []int
	for _, k := range c.OSRounds {
		for _, j := range c.OCRounds {
			if k == j {
				shared = append(shared, k)
			}
		}
	}
	return shared
}

// OSAllowed reports whether round k is eligible for opening meetings.
func (c Config) OSAllowed(k int) bool { return containsRound(c.OSRounds, k) }

// OCAllowed reports whether round k is eligible for closing meetings.
func (c Config) OCAllowed(k int) bool { return containsRound(c.OCRounds, k) }

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if len(c.OSRounds) == 0 {
		return fmt.Errorf("os_rounds must not be empty")
	}
	if len(c.OCRounds) == 0 {
		return fmt.Errorf("oc_rounds must not be empty")
	}
	for _, k := range c.OSRounds {
		if k < 1 || k > c.Rounds {
			return fmt.Errorf("os round %d outside [1,%d]", k, c.Rounds)
		}
	}
	for _, k := range c.OCRounds {
		if k < 1 || k > c.Rounds {
			return fmt.Errorf("oc round %d outside [1,%d]", k, c.Rounds)
		}
	}
	if c.MaxOSPerMentor <= 0 {
		return fmt.Errorf("max_os_per_mentor must be positive, got %d", c.MaxOSPerMentor)
	}
	if c.MaxOCPerMentor <= 0 {
		return fmt.Errorf("max_oc_per_mentor must be positive, got %d", c.MaxOCPerMentor)
	}
	return nil
}

// SetDefaults fills zero-valued fields with the standard layout.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.Rounds == 0 {
		c.Rounds = def.Rounds
	}
	if len(c.OSRounds) == 0 {
		c.OSRounds = append([]int(nil), def.OSRounds...)
	}
	if len(c.OCRounds) == 0 {
		c.OCRounds = append([]int(nil), def.OCRounds...)
	}
	if c.MaxOSPerMentor == 0 {
		c.MaxOSPerMentor = def.MaxOSPerMentor
	}
	if c.MaxOCPerMentor == 0 {
		c.MaxOCPerMentor = def.MaxOCPerMentor
	}
}

func containsRound(rounds []int, k int) bool {
	for _, r := range rounds {
		if r == k {
			return true
		}
	}
	return false
}
