// Package arrowx plugs the library's off-heap allocator into Apache
// Arrow, so arrow buffers share pkg/alloc's accounting.
package arrowx

import (
	"unsafe"

	arrowmem "github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/moontrade/sptr/pkg/alloc"
)

// OffHeap is an arrow allocator over pkg/alloc.
var OffHeap offHeap

var _ arrowmem.Allocator = OffHeap

type offHeap struct{}

func (offHeap) Allocate(size int) []byte {
	if size < 1 {
		return nil
	}
	return unsafe.Slice((*byte)(alloc.Alloc(uintptr(size))), size)
}

func (offHeap) Reallocate(size int, b []byte) []byte {
	if len(b) < 1 {
		return OffHeap.Allocate(size)
	}
	p := alloc.Realloc(unsafe.Pointer(&b[0]), uintptr(size))
	return unsafe.Slice((*byte)(p), size)
}

func (offHeap) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	alloc.Free(unsafe.Pointer(&b[0]))
}
