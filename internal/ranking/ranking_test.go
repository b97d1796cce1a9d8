package ranking

import (
	"testing"

	"github.com/google/uuid"
)

func TestRandomMatchScoreRange(t *testing.T) {
	s := NewRandom(1)
	for i := 0; i < 100; i++ {
		score := s.MatchScore(uuid.New())
		if score < 50 || score >= 100 {
			t.Fatalf("score %f outside [50,100)", score)
		}
	}
}

func TestRandomShuffleIsPermutation(t *testing.T) {
	s := NewRandom(42)

	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	seen := make(map[int]bool, len(items))
	for _, v := range items {
		if v < 0 || v >= len(items) || seen[v] {
			t.Fatalf("shuffle lost or duplicated element %d: %v", v, items)
		}
		seen[v] = true
	}
}

func TestFixedStrategy(t *testing.T) {
	s := Fixed(73.5)

	if got := s.MatchScore(uuid.New()); got != 73.5 {
		t.Fatalf("Fixed score = %f, want 73.5", got)
	}

	items := []int{1, 2, 3}
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if items[0] != 1 || items[1] != 2 || items[2] != 3 {
		t.Fatalf("Fixed shuffle must keep order, got %v", items)
	}
}
