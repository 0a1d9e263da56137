// Package unique provides a move-only exclusive-ownership pointer with
// a pluggable deleter. One owner, deterministic destruction on Close or
// Reset. There is no shared state: copying a Ptr by assignment instead
// of Move is a misuse that ends in double destruction.
package unique

// Destroyer is implemented by payloads with teardown logic; the
// default deleter invokes it.
type Destroyer interface {
	Destroy()
}

// Deleter destroys a payload when its owner lets go.
type Deleter[T any] func(*T)

// Ptr is an exclusive owner of a payload. The zero value is empty.
type Ptr[T any] struct {
	ptr *T
	del Deleter[T]
}

// New takes ownership of ptr with the default deleter, which calls
// Destroy when T implements it and otherwise just drops the reference.
func New[T any](ptr *T) Ptr[T] {
	return Ptr[T]{ptr: ptr, del: defaultDelete[T]}
}

// WithDeleter takes ownership of ptr, destroying it with del.
func WithDeleter[T any](ptr *T, del Deleter[T]) Ptr[T] {
	if del == nil {
		del = defaultDelete[T]
	}
	return Ptr[T]{ptr: ptr, del: del}
}

func defaultDelete[T any](ptr *T) {
	if d, ok := any(ptr).(Destroyer); ok {
		d.Destroy()
	}
}

// Get returns the owned pointer without transferring ownership.
func (u Ptr[T]) Get() *T { return u.ptr }

// Release relinquishes ownership and returns the raw pointer without
// destroying it. The caller becomes responsible for the payload.
func (u *Ptr[T]) Release() *T {
	out := u.ptr
	u.ptr = nil
	return out
}

// Reset destroys the currently held payload, if any, and takes
// ownership of ptr. The deleter is kept.
func (u *Ptr[T]) Reset(ptr *T) {
	old := u.ptr
	u.ptr = ptr
	if old != nil {
		u.deleter()(old)
	}
}

// Close destroys the held payload and empties the owner. Safe to call
// twice; the error is always nil, the signature exists for defer and
// io.Closer call sites.
func (u *Ptr[T]) Close() error {
	u.Reset(nil)
	return nil
}

// Move transfers ownership out of u, leaving it empty.
func (u *Ptr[T]) Move() Ptr[T] {
	out := *u
	u.ptr = nil
	return out
}

// Swap exchanges owners.
func (u *Ptr[T]) Swap(other *Ptr[T]) {
	*u, *other = *other, *u
}

// Deleter returns the deleter in use.
func (u Ptr[T]) Deleter() Deleter[T] { return u.deleter() }

func (u Ptr[T]) deleter() Deleter[T] {
	if u.del == nil {
		return defaultDelete[T]
	}
	return u.del
}

func (u Ptr[T]) IsNil() bool { return u.ptr == nil }
