// Package ranking isolates the ordering and scoring policy used by the
// suggestion and mentor-matching lists. The production default randomizes;
// the scores it produces are decorative, never authoritative. Tests inject
// a deterministic strategy.
package ranking

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

type Strategy interface {
	// MatchScore returns a 0-100 score for a mentor card. Non-persisted.
	MatchScore(mentorID uuid.UUID) float64
	// Shuffle reorders a list of n elements via the swap callback.
	Shuffle(n int, swap func(i, j int))
}

type randomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns the production strategy backed by the given seed.
func NewRandom(seed int64) Strategy {
	return &randomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (s *randomStrategy) MatchScore(_ uuid.UUID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 50 + s.rng.Float64()*50
}

func (s *randomStrategy) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}

type fixedStrategy struct {
	score float64
}

// Fixed returns a deterministic strategy: constant score, identity order.
func Fixed(score float64) Strategy {
	return fixedStrategy{score: score}
}

func (s fixedStrategy) MatchScore(_ uuid.UUID) float64 {
	return s.score
}

func (s fixedStrategy) Shuffle(_ int, _ func(i, j int)) {}
