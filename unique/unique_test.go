package unique

import (
	"testing"
)

type resource struct {
	id        int
	destroyed *int
}

func (r *resource) Destroy() { *r.destroyed += 1 }

func TestCloseDestroysOnce(t *testing.T) {
	destroyed := 0
	u := New(&resource{id: 1, destroyed: &destroyed})
	if u.Get() == nil || u.Get().id != 1 {
		t.Fatalf("bad payload: %+v", u.Get())
	}
	if err := u.Close(); err != nil {
		t.Fatal(err)
	}
	if destroyed != 1 {
		t.Fatalf("destroyed %d times, want 1", destroyed)
	}
	if !u.IsNil() {
		t.Fatal("owner must be empty after Close")
	}
	// Close is idempotent.
	_ = u.Close()
	if destroyed != 1 {
		t.Fatalf("second Close destroyed again: %d", destroyed)
	}
}

func TestReleaseRelinquishes(t *testing.T) {
	destroyed := 0
	r := &resource{destroyed: &destroyed}
	u := New(r)
	got := u.Release()
	if got != r {
		t.Fatal("Release must hand back the raw pointer")
	}
	_ = u.Close()
	if destroyed != 0 {
		t.Fatal("released payload must not be destroyed by the old owner")
	}
}

func TestResetSwapsPayloads(t *testing.T) {
	d1, d2 := 0, 0
	u := New(&resource{id: 1, destroyed: &d1})
	u.Reset(&resource{id: 2, destroyed: &d2})
	if d1 != 1 {
		t.Fatal("Reset must destroy the previous payload")
	}
	if u.Get().id != 2 {
		t.Fatal("Reset did not take the new payload")
	}
	_ = u.Close()
	if d2 != 1 {
		t.Fatalf("destroyed %d times, want 1", d2)
	}
}

func TestCustomDeleter(t *testing.T) {
	calls := 0
	u := WithDeleter(&resource{}, func(r *resource) {
		calls++
	})
	_ = u.Close()
	if calls != 1 {
		t.Fatalf("deleter ran %d times, want 1", calls)
	}
}

func TestMove(t *testing.T) {
	destroyed := 0
	u := New(&resource{destroyed: &destroyed})
	moved := u.Move()
	if !u.IsNil() {
		t.Fatal("moved-from owner must be empty")
	}
	_ = u.Close()
	if destroyed != 0 {
		t.Fatal("moved-from owner destroyed the payload")
	}
	_ = moved.Close()
	if destroyed != 1 {
		t.Fatalf("destroyed %d times, want 1", destroyed)
	}
}

func TestSwap(t *testing.T) {
	d1, d2 := 0, 0
	a := New(&resource{id: 1, destroyed: &d1})
	b := New(&resource{id: 2, destroyed: &d2})
	a.Swap(&b)
	if a.Get().id != 2 || b.Get().id != 1 {
		t.Fatal("swap did not exchange payloads")
	}
	_ = a.Close()
	_ = b.Close()
	if d1 != 1 || d2 != 1 {
		t.Fatalf("destroyed %d/%d times, want 1/1", d1, d2)
	}
}

type plain struct{ n int }

func TestDefaultDeleterWithoutDestroy(t *testing.T) {
	u := New(&plain{n: 4})
	_ = u.Close() // nothing to run, must not panic
	if !u.IsNil() {
		t.Fatal("owner must be empty")
	}
}

func TestZeroValue(t *testing.T) {
	var u Ptr[resource]
	if !u.IsNil() || u.Get() != nil {
		t.Fatal("zero value must be empty")
	}
	_ = u.Close()
	if u.Deleter() == nil {
		t.Fatal("zero value must still expose a usable deleter")
	}
}
