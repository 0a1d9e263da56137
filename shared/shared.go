// Package shared provides manual-lifetime shared ownership for a
// single payload: strong handles that keep it alive, weak handles that
// observe it, and a control block that destroys the payload exactly
// once when the last strong handle releases.
//
// Handles are explicit about lifecycle: Clone to copy, Release to drop,
// Move to transfer. A handle's zero value is empty and inert.
package shared

import (
	"errors"
)

// ErrExpired is reported by FromWeak when the payload is already gone.
var ErrExpired = errors.New("shared: weak handle expired")

// Shared is a strong owning handle. It keeps the payload alive; the
// payload is destroyed when the last Shared in its group releases.
// The zero value is empty.
type Shared[T any] struct {
	block  controlBlock
	access *T
}

// New wraps a separately allocated payload in a fresh ownership group
// with a strong count of one. New(nil) returns an empty handle.
// Wrapping the same pointer twice creates two groups that will both
// try to destroy it; don't.
func New[T any](ptr *T) Shared[T] {
	if ptr == nil {
		return Shared[T]{}
	}
	b := newPtrBlock(ptr)
	b.incStrong()
	s := Shared[T]{block: b, access: ptr}
	bindSelf(s)
	return s
}

// Make places value in a combined allocation: one block holds both the
// counters and the payload storage. Preferred over New when no raw
// pointer exists yet, since it allocates once instead of twice.
func Make[T any](value T) Shared[T] {
	b := newInlineBlock[T]()
	b.value = value
	return ownInline(b)
}

// MakeWith is Make with in-place construction: init runs on the zeroed
// payload storage before any handle exists.
func MakeWith[T any](init func(*T)) Shared[T] {
	b := newInlineBlock[T]()
	if init != nil {
		init(&b.value)
	}
	return ownInline(b)
}

func ownInline[T any](b *inlineBlock[T]) Shared[T] {
	b.incStrong()
	s := Shared[T]{block: b, access: &b.value}
	bindSelf(s)
	return s
}

// Alias returns a strong handle that shares owner's lifetime tracking
// but dereferences to target, typically a field of the owned payload.
// The aliased handle keeps the whole payload alive even after owner
// itself releases.
func Alias[U, T any](owner Shared[T], target *U) Shared[U] {
	if owner.block == nil {
		return Shared[U]{}
	}
	owner.block.incStrong()
	return Shared[U]{block: owner.block, access: target}
}

// FromWeak promotes a weak handle, or reports ErrExpired if the
// payload is already destroyed. Nothing is allocated on failure.
func FromWeak[T any](w Weak[T]) (Shared[T], error) {
	if w.block == nil || w.block.strong() == 0 {
		return Shared[T]{}, ErrExpired
	}
	w.block.incStrong()
	return Shared[T]{block: w.block, access: w.access}, nil
}

// Clone returns a new strong handle on the same group.
func (s Shared[T]) Clone() Shared[T] {
	if s.block != nil {
		s.block.incStrong()
	}
	return s
}

// Release drops this handle's strong claim and empties it. Releasing
// the last strong handle destroys the payload. No-op when empty.
func (s *Shared[T]) Release() {
	if s.block != nil {
		s.block.decStrong()
	}
	s.block = nil
	s.access = nil
}

// Move transfers ownership out of s, leaving it empty. Counters are
// untouched.
func (s *Shared[T]) Move() Shared[T] {
	out := *s
	s.block = nil
	s.access = nil
	return out
}

// Set replaces s with a clone of other. The new claim is taken before
// the old one is dropped, so s.Set(*s) is safe.
func (s *Shared[T]) Set(other Shared[T]) {
	other = other.Clone()
	if s.block != nil {
		s.block.decStrong()
	}
	*s = other
}

// Swap exchanges two handles without touching counters.
func (s *Shared[T]) Swap(other *Shared[T]) {
	*s, *other = *other, *s
}

// Weak demotes s to a weak handle on the same group.
func (s Shared[T]) Weak() Weak[T] {
	if s.block != nil {
		s.block.incWeak()
	}
	return Weak[T]{block: s.block, access: s.access}
}

// Get returns the dereference target, nil when empty.
func (s Shared[T]) Get() *T { return s.access }

// UseCount returns the group's strong count, 0 when empty.
func (s Shared[T]) UseCount() int {
	if s.block == nil {
		return 0
	}
	return int(s.block.strong())
}

func (s Shared[T]) IsNil() bool { return s.access == nil }

// Equal compares dereference targets, not groups: two aliases of one
// group pointing at different addresses are not equal, and handles
// from different groups over the same address are.
func (s Shared[T]) Equal(other Shared[T]) bool {
	return s.access == other.access
}
