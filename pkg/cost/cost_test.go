package cost

import (
	"testing"

	"pgregory.net/rapid"
)

func TestCostValid(t *testing.T) {
	if New(3).Valid() != true {
		t.Fatal("coin-only cost should be valid")
	}
	var zero Cost
	if zero.Valid() {
		t.Fatal("zero-value Cost should not be valid")
	}
}

func TestIsCoinOnly(t *testing.T) {
	c := New(4)
	if !c.IsCoinOnly() {
		t.Fatal("expected coin-only cost")
	}
	withPotion := NewFull(4, true, 1, true, 0, false)
	if withPotion.IsCoinOnly() {
		t.Fatal("cost with potion should not be coin-only")
	}
}

func TestGetRelCostClampsAtZero(t *testing.T) {
	c := New(2)
	got := c.GetRelCost(-5)
	if got.Coin() != 0 {
		t.Fatalf("expected clamp to 0, got %d", got.Coin())
	}
}

func TestGetRelCostRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coin := rapid.IntRange(0, 20).Draw(rt, "coin")
		delta := rapid.IntRange(-10, 10).Draw(rt, "delta")
		c := New(coin)
		shifted := c.GetRelCost(delta)
		if shifted.Coin()-delta < 0 {
			// clamped on the way out; round trip only holds when it didn't clamp
			return
		}
		back := shifted.GetRelCost(-delta)
		if coin+delta >= 0 && back.Coin() != coin {
			t.Fatalf("round trip failed: coin=%d delta=%d got=%d", coin, delta, back.Coin())
		}
	})
}

func TestSetInsertIdempotent(t *testing.T) {
	s := NewSet()
	if !s.Insert(New(3)) {
		t.Fatal("first insert should report added")
	}
	if s.Insert(New(3)) {
		t.Fatal("duplicate insert should report not added")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", s.Len())
	}
}

func TestSetOrdering(t *testing.T) {
	s := NewSet(New(5), New(1), New(3))
	items := s.Items()
	for i := 1; i < len(items); i++ {
		if !items[i-1].Less(items[i]) {
			t.Fatalf("items not in ascending order: %v", items)
		}
	}
}

func TestGetCostSetUpTo(t *testing.T) {
	s := GetCostSetUpTo(3)
	if s.Len() != 4 {
		t.Fatalf("expected 4 members (0..3), got %d", s.Len())
	}
	for i := 0; i <= 3; i++ {
		if !s.Contains(New(i)) {
			t.Fatalf("missing cost %d", i)
		}
	}
}

func TestGetCostSetDiffExactInsertsBothShifts(t *testing.T) {
	basis := NewSet(New(5))
	diff := GetCostSetDiff(2, true, basis)
	if !diff.Contains(New(7)) {
		t.Fatal("expected +2 shift present")
	}
	if !diff.Contains(New(3)) {
		t.Fatal("expected -2 shift present")
	}
	if diff.Len() != 2 {
		t.Fatalf("expected exactly 2 members, got %d", diff.Len())
	}
}

func TestGetCostSetDiffExactClampsNegative(t *testing.T) {
	basis := NewSet(New(1))
	diff := GetCostSetDiff(5, true, basis)
	if diff.Len() != 1 || !diff.Contains(New(6)) {
		t.Fatalf("expected only the +delta shift when basis coin < delta, got %v", diff.Items())
	}
}

func TestGetCostSetDiffNonExactRange(t *testing.T) {
	basis := NewSet(New(5))
	diff := GetCostSetDiff(2, false, basis)
	for _, want := range []int{3, 4, 5, 6, 7} {
		if !diff.Contains(New(want)) {
			t.Fatalf("expected shift %d present in %v", want, diff.Items())
		}
	}
}

func TestIntersects(t *testing.T) {
	a := NewSet(New(1), New(2), New(3))
	b := NewSet(New(10), New(2))
	if !Intersects(a, b) {
		t.Fatal("expected intersection on cost 2")
	}
	c := NewSet(New(99))
	if Intersects(a, c) {
		t.Fatal("expected no intersection")
	}
}

func TestEqualityImpliesEqualHash(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coin := rapid.IntRange(0, 20).Draw(rt, "coin")
		potion := rapid.IntRange(0, 1).Draw(rt, "potion")
		debt := rapid.IntRange(0, 20).Draw(rt, "debt")
		a := NewFull(coin, true, potion, true, debt, true)
		b := NewFull(coin, true, potion, true, debt, true)
		if !a.Equal(b) {
			t.Fatal("expected equal costs")
		}
		if a.Hash() != b.Hash() {
			t.Fatalf("equal costs must hash equal: %d vs %d", a.Hash(), b.Hash())
		}
	})
}
