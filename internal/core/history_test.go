package core

import "testing"

func TestHistory_Empty(t *testing.T) {
	h := NewHistory[int](100)
	if got := h.Items(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if h.Len() != 0 {
		t.Errorf("expected len 0, got %d", h.Len())
	}
}

func TestHistory_KeepsOrderBelowCapacity(t *testing.T) {
	h := NewHistory[int](100)
	for i := 1; i <= 10; i++ {
		h.Append(i)
	}
	items := h.Items()
	if len(items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(items))
	}
	for i, v := range items {
		if v != i+1 {
			t.Errorf("item %d: expected %d, got %d", i, i+1, v)
		}
	}
}

func TestHistory_EvictsOldestAtCapacity(t *testing.T) {
	h := NewHistory[int](100)
	for i := 1; i <= 150; i++ {
		h.Append(i)
	}
	items := h.Items()
	if len(items) != 100 {
		t.Fatalf("expected 100 items, got %d", len(items))
	}
	if items[0] != 51 {
		t.Errorf("expected oldest retained item 51, got %d", items[0])
	}
	if items[99] != 150 {
		t.Errorf("expected newest item 150, got %d", items[99])
	}
	for i := 1; i < len(items); i++ {
		if items[i] != items[i-1]+1 {
			t.Fatalf("items not in insertion order at %d: %d then %d", i, items[i-1], items[i])
		}
	}
}

func TestHistory_ItemsIsACopy(t *testing.T) {
	h := NewHistory[int](4)
	h.Append(1)
	items := h.Items()
	items[0] = 99
	if h.Items()[0] != 1 {
		t.Error("mutating the snapshot changed the log")
	}
}

func TestHistory_ZeroCapacityClampsToOne(t *testing.T) {
	h := NewHistory[int](0)
	h.Append(1)
	h.Append(2)
	if h.Len() != 1 {
		t.Fatalf("expected len 1, got %d", h.Len())
	}
	if h.Items()[0] != 2 {
		t.Errorf("expected latest item retained, got %d", h.Items()[0])
	}
}
