package alloc

import (
	"unsafe"

	"github.com/moontrade/sptr/pkg/counter"
	"github.com/moontrade/unsafe/memory"
)

// Stats tracks every allocation made through this package. Alloc and
// free counts must balance once all owners have released.
var Stats struct {
	Allocs counter.Counter
	Frees  counter.Counter
}

// Alloc returns size bytes of off-heap memory. The memory is not
// zeroed and is invisible to the garbage collector: it must never
// hold Go pointers and must be returned with Free.
func Alloc(size uintptr) unsafe.Pointer {
	Stats.Allocs.Incr()
	return unsafe.Pointer(memory.Alloc(size))
}

// Zeroed is Alloc followed by a clear of the whole region.
func Zeroed(size uintptr) unsafe.Pointer {
	p := Alloc(size)
	memclrNoHeapPointers(p, size)
	return p
}

// Realloc resizes an allocation previously returned by Alloc.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(memory.Realloc(memory.Pointer(p), size))
}

// Free releases an allocation previously returned by Alloc.
func Free(p unsafe.Pointer) {
	Stats.Frees.Incr()
	memory.Free(memory.Pointer(p))
}
