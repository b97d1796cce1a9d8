package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizePairSymmetry(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	lo1, hi1 := NormalizePair(a, b)
	lo2, hi2 := NormalizePair(b, a)

	if lo1 != lo2 || hi1 != hi2 {
		t.Fatalf("NormalizePair is not symmetric: (%s,%s) vs (%s,%s)", lo1, hi1, lo2, hi2)
	}
	if lo1.String() > hi1.String() {
		t.Fatalf("NormalizePair returned unordered pair: %s > %s", lo1, hi1)
	}
}

func TestPairKeySymmetry(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	if PairKey(a, b) != PairKey(b, a) {
		t.Fatalf("PairKey differs by direction: %s vs %s", PairKey(a, b), PairKey(b, a))
	}
	if PairKey(a, b) == PairKey(a, uuid.New()) {
		t.Fatal("PairKey collided for different pairs")
	}
}

func TestNewConnectionCanonicalOrder(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	c1 := NewConnection(a, b)
	c2 := NewConnection(b, a)

	if c1.UserLowID != c2.UserLowID || c1.UserHighID != c2.UserHighID {
		t.Fatal("NewConnection stored different rows for the same pair")
	}
	if c1.UserLowID.String() > c1.UserHighID.String() {
		t.Fatal("NewConnection did not normalize the pair")
	}
}

func TestConnectionOther(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conn := NewConnection(a, b)

	if got := conn.Other(a); got != b {
		t.Fatalf("Other(%s) = %s, want %s", a, got, b)
	}
	if got := conn.Other(b); got != a {
		t.Fatalf("Other(%s) = %s, want %s", b, got, a)
	}
}
