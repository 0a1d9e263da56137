package shared

// Weak observes a group without keeping its payload alive. Liveness is
// answered by the group's strong count, never by inspecting the stored
// address: the address keeps its old value after the payload dies and
// means nothing from then on. The zero value is empty.
type Weak[T any] struct {
	block  controlBlock
	access *T
}

// Clone returns a new weak handle on the same group.
func (w Weak[T]) Clone() Weak[T] {
	if w.block != nil {
		w.block.incWeak()
	}
	return w
}

// Release drops this handle's weak claim and empties it. Releasing the
// last handle of any kind frees the group's block. No-op when empty.
func (w *Weak[T]) Release() {
	if w.block != nil {
		w.block.decWeak()
	}
	w.block = nil
	w.access = nil
}

// Move transfers the claim out of w, leaving it empty.
func (w *Weak[T]) Move() Weak[T] {
	out := *w
	w.block = nil
	w.access = nil
	return out
}

// Set replaces w with a clone of other; safe under self-assignment.
func (w *Weak[T]) Set(other Weak[T]) {
	other = other.Clone()
	if w.block != nil {
		w.block.decWeak()
	}
	*w = other
}

// Swap exchanges two handles without touching counters.
func (w *Weak[T]) Swap(other *Weak[T]) {
	*w, *other = *other, *w
}

// UseCount returns the group's strong count, 0 when empty.
func (w Weak[T]) UseCount() int {
	if w.block == nil {
		return 0
	}
	return int(w.block.strong())
}

// Expired reports whether the payload is gone. Empty handles are
// expired.
func (w Weak[T]) Expired() bool {
	return w.UseCount() == 0
}

// Lock promotes to a strong handle, or returns an empty one if the
// payload is gone. Use FromWeak for the error-reporting form.
func (w Weak[T]) Lock() Shared[T] {
	s, err := FromWeak(w)
	if err != nil {
		return Shared[T]{}
	}
	return s
}

func (w Weak[T]) IsNil() bool { return w.block == nil }
