package shared

import (
	"unsafe"

	logger "github.com/moontrade/log"
	"github.com/moontrade/sptr/pkg/alloc"
	"github.com/moontrade/sptr/pkg/counter"
	"github.com/moontrade/sptr/pkg/util"
)

// Destroyer is implemented by payloads that need teardown logic when
// the last strong handle lets go. Destroy runs exactly once, after the
// strong count reaches zero and before the payload storage is dropped.
type Destroyer interface {
	Destroy()
}

// Stats counts control-block traffic across every ownership group.
// Live must return to its starting value once all handles are gone.
var Stats struct {
	Live      counter.Counter
	Finalized counter.Counter
}

// controlBlock tracks the two coupled counters of one ownership group.
// strongCount is the number of strong holders; weakCount is the number
// of holders of any kind, so weakCount >= strongCount always. The
// payload dies when strongCount hits zero, the block itself when
// weakCount does. A block is shared by reference and never copied.
//
// Counters are plain ints: a block and its handles belong to a single
// goroutine at a time. Cross-goroutine mutation without external
// synchronization is out of contract.
type controlBlock interface {
	incStrong()
	decStrong()
	incWeak()
	decWeak()
	strong() int32
}

// ptrBlock owns the destruction of a separately allocated payload.
type ptrBlock[T any] struct {
	ptr         *T
	strongCount int32
	weakCount   int32
}

func newPtrBlock[T any](ptr *T) *ptrBlock[T] {
	Stats.Live.Incr()
	return &ptrBlock[T]{ptr: ptr}
}

func (b *ptrBlock[T]) incStrong() {
	b.strongCount++
	b.weakCount++
}

func (b *ptrBlock[T]) decStrong() {
	b.strongCount--
	b.weakCount--
	if b.strongCount == 0 {
		// Hold the block while the payload tears down. A self weak
		// link released mid-finalize must not collapse weakCount to
		// zero and free the block under us.
		b.weakCount++
		finalize(b.ptr)
		b.ptr = nil
		b.weakCount--
	}
	if b.weakCount == 0 {
		b.free()
	}
}

func (b *ptrBlock[T]) incWeak() {
	b.weakCount++
}

func (b *ptrBlock[T]) decWeak() {
	b.weakCount--
	if b.weakCount == 0 {
		b.free()
	}
}

func (b *ptrBlock[T]) strong() int32 { return b.strongCount }

func (b *ptrBlock[T]) free() {
	*b = ptrBlock[T]{}
	Stats.Live.Decr()
}

// inlineBlock stores the payload value adjacent to the counters, so
// one allocation serves both. When T holds no heap pointers the whole
// block lives off-heap and is returned to the allocator at weak zero;
// otherwise it is an ordinary heap struct and freeing means zeroing.
type inlineBlock[T any] struct {
	strongCount int32
	weakCount   int32
	offHeap     bool
	value       T
}

func newInlineBlock[T any]() *inlineBlock[T] {
	Stats.Live.Incr()
	if alloc.Pointerless[T]() {
		b := (*inlineBlock[T])(alloc.Zeroed(unsafe.Sizeof(inlineBlock[T]{})))
		b.offHeap = true
		return b
	}
	return &inlineBlock[T]{}
}

func (b *inlineBlock[T]) incStrong() {
	b.strongCount++
	b.weakCount++
}

func (b *inlineBlock[T]) decStrong() {
	b.strongCount--
	b.weakCount--
	if b.strongCount == 0 {
		b.weakCount++
		finalize(&b.value)
		var zero T
		b.value = zero
		b.weakCount--
	}
	if b.weakCount == 0 {
		b.free()
	}
}

func (b *inlineBlock[T]) incWeak() {
	b.weakCount++
}

func (b *inlineBlock[T]) decWeak() {
	b.weakCount--
	if b.weakCount == 0 {
		b.free()
	}
}

func (b *inlineBlock[T]) strong() int32 { return b.strongCount }

func (b *inlineBlock[T]) free() {
	if b.offHeap {
		alloc.Free(unsafe.Pointer(b))
	} else {
		*b = inlineBlock[T]{}
	}
	Stats.Live.Decr()
}

// finalize runs the payload's teardown: the user Destroy hook first,
// then the embedded self weak link, mirroring member destruction
// following the destructor body. Runs inside the weak-count bracket
// of decStrong.
func finalize[T any](ptr *T) {
	if d, ok := any(ptr).(Destroyer); ok {
		destroy(d)
	}
	if r, ok := any(ptr).(selfReleaser); ok {
		r.releaseSelf()
	}
	Stats.Finalized.Incr()
}

func destroy(d Destroyer) {
	defer func() {
		if e := recover(); e != nil {
			logger.Error(util.PanicToError(e), "Destroy panic")
		}
	}()
	d.Destroy()
}
