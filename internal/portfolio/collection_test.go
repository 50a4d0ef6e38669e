package portfolio

import (
	"errors"
	"testing"
)

func TestPrependPutsNewItemFirst(t *testing.T) {
	orig := []string{"b", "c"}
	out := Prepend(orig, "a")

	if len(out) != 3 || out[0] != "a" || out[1] != "b" || out[2] != "c" {
		t.Fatalf("unexpected result %v", out)
	}
	if len(orig) != 2 {
		t.Fatalf("input slice modified: %v", orig)
	}
}

func TestRemoveAtPreservesOrder(t *testing.T) {
	out, err := RemoveAt([]int{10, 20, 30, 40}, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := []int{10, 30, 40}
	if len(out) != len(want) {
		t.Fatalf("len = %d", len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestRemoveAtRejectsOutOfRange(t *testing.T) {
	if _, err := RemoveAt([]int{1}, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := RemoveAt([]int{1}, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestUpdateAtMutatesInPlace(t *testing.T) {
	items := []Project{{ID: "p1", Title: "Old"}}
	err := UpdateAt(items, 0, func(p *Project) { p.Title = "New" })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if items[0].Title != "New" {
		t.Fatalf("title = %q", items[0].Title)
	}
}
