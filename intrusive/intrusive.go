// Package intrusive provides a strong-only reference-counted pointer
// whose counter lives inside the managed object: embed RefCounted and
// hand the object to New. There is no control block and no weak form;
// use package shared when observers must outlive the payload.
package intrusive

import (
	"strconv"
)

// Destroyer is implemented by payloads with teardown logic, invoked
// when the last reference releases.
type Destroyer interface {
	Destroy()
}

// RefCounted is the embeddable counter. Its zero value is an
// unreferenced object. Counts are plain ints: an object and its
// handles belong to one goroutine at a time.
type RefCounted struct {
	refs int32
}

func (rc *RefCounted) incRef() int32 {
	rc.refs++
	return rc.refs
}

func (rc *RefCounted) decRef() int32 {
	rc.refs--
	if rc.refs < 0 {
		panic("intrusive: refcount underflow: " + strconv.Itoa(int(rc.refs)))
	}
	return rc.refs
}

// RefCount returns the current number of references.
func (rc *RefCounted) RefCount() int { return int(rc.refs) }

// counted is satisfied by *P for any payload P embedding RefCounted.
type counted interface {
	incRef() int32
	decRef() int32
	RefCount() int
}

// Ptr is a strong reference to a payload embedding RefCounted. The
// zero value is empty.
type Ptr[T any] struct {
	obj *T
}

// New references obj. Panics if T does not embed RefCounted.
func New[T any](obj *T) Ptr[T] {
	if obj != nil {
		any(obj).(counted).incRef()
	}
	return Ptr[T]{obj: obj}
}

// Clone returns a new reference to the same object.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.obj != nil {
		any(p.obj).(counted).incRef()
	}
	return p
}

// Release drops this reference and empties the handle. The object's
// Destroy hook runs when the count reaches zero. No-op when empty.
func (p *Ptr[T]) Release() {
	obj := p.obj
	p.obj = nil
	if obj == nil {
		return
	}
	if any(obj).(counted).decRef() == 0 {
		if d, ok := any(obj).(Destroyer); ok {
			d.Destroy()
		}
	}
}

// Move transfers the reference out of p, leaving it empty.
func (p *Ptr[T]) Move() Ptr[T] {
	out := *p
	p.obj = nil
	return out
}

// Reset drops the current reference and references obj instead.
func (p *Ptr[T]) Reset(obj *T) {
	next := New(obj)
	p.Release()
	*p = next
}

// Set replaces p with a clone of other; safe under self-assignment.
func (p *Ptr[T]) Set(other Ptr[T]) {
	other = other.Clone()
	p.Release()
	*p = other
}

// Swap exchanges references without touching counts.
func (p *Ptr[T]) Swap(other *Ptr[T]) {
	*p, *other = *other, *p
}

// Get returns the referenced object, nil when empty.
func (p Ptr[T]) Get() *T { return p.obj }

// UseCount returns the object's reference count, 0 when empty.
func (p Ptr[T]) UseCount() int {
	if p.obj == nil {
		return 0
	}
	return any(p.obj).(counted).RefCount()
}

func (p Ptr[T]) IsNil() bool { return p.obj == nil }
