package alloc

import (
	"reflect"
	"unsafe"
)

// memclrNoHeapPointers clears n bytes starting at ptr. Safe here
// because this package only ever clears pointer-free memory.
//
//go:linkname memclrNoHeapPointers runtime.memclrNoHeapPointers
func memclrNoHeapPointers(ptr unsafe.Pointer, n uintptr)

// Pointerless reports whether T contains no heap pointers anywhere in
// its layout. Values of such types may live outside the Go heap.
func Pointerless[T any]() bool {
	return ptrdataOf(reflect.TypeOf((*T)(nil)).Elem()) == 0
}

// ptrdataOf reads the runtime type's ptrdata: the number of leading
// bytes the garbage collector would scan for pointers.
func ptrdataOf(t reflect.Type) uintptr {
	typ := (*typeInterface)(unsafe.Pointer(&t))
	return typ.value.ptrdata
}

// typeInterface is the header of a reflect.Type interface value.
type typeInterface struct {
	typ   unsafe.Pointer
	value *rtype
}

type rtype struct {
	size    uintptr
	ptrdata uintptr
}
