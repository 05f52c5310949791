package sim

import (
	"testing"

	"github.com/vovakirdan/woods/internal/core"
)

func TestNewAgent(t *testing.T) {
	a := NewAgent(3, core.Pt(1, 2), 0)

	if a.ID != 3 || a.Pos != core.Pt(1, 2) {
		t.Errorf("NewAgent() = id %d at %v, expected id 3 at (1, 2)", a.ID, a.Pos)
	}
	if a.MoveCount != 0 {
		t.Errorf("MoveCount = %d, expected 0", a.MoveCount)
	}
	if a.Capacity() != DefaultHistoryCapacity {
		t.Errorf("Capacity() = %d, expected default %d", a.Capacity(), DefaultHistoryCapacity)
	}
	if h := a.History(); len(h) != 1 || h[0] != core.Pt(1, 2) {
		t.Errorf("History() = %v, expected [(1, 2)]", h)
	}
}

func TestRecordMoveEvictsOldest(t *testing.T) {
	a := NewAgent(1, core.Pt(0, 0), 3)

	path := []core.Point{core.Pt(1, 0), core.Pt(1, 1), core.Pt(2, 1), core.Pt(2, 2)}
	for _, p := range path {
		a.RecordMove(p)
	}

	if a.Pos != core.Pt(2, 2) {
		t.Errorf("Pos = %v, expected (2, 2)", a.Pos)
	}
	if a.MoveCount != 4 {
		t.Errorf("MoveCount = %d, expected 4", a.MoveCount)
	}

	expected := []core.Point{core.Pt(1, 1), core.Pt(2, 1), core.Pt(2, 2)}
	h := a.History()
	if len(h) != len(expected) {
		t.Fatalf("History() = %v, expected %v", h, expected)
	}
	for i := range expected {
		if h[i] != expected[i] {
			t.Errorf("History()[%d] = %v, expected %v", i, h[i], expected[i])
		}
	}
}

func TestHistoryIsCopy(t *testing.T) {
	a := NewAgent(1, core.Pt(0, 0), 2)
	h := a.History()
	h[0] = core.Pt(9, 9)

	if a.History()[0] != core.Pt(0, 0) {
		t.Error("mutating History() result should not affect the agent")
	}
}
