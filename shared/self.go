package shared

// SelfAware lets a payload mint handles to itself. Embed it by value:
//
//	type Session struct {
//		shared.SelfAware[Session]
//		...
//	}
//
// The first wrapping operation (New, Make, MakeWith) installs a weak
// self link right after the payload exists and the strong count is
// one. From then on any method may call SharedFromSelf or
// WeakFromSelf. Calling either before the instance is owned by a
// Shared is a precondition violation and panics.
type SelfAware[T any] struct {
	self Weak[T]
}

// selfBinder is satisfied by *P for any payload P embedding
// SelfAware[P]; the wrap path uses it to detect the capability.
type selfBinder[T any] interface {
	bindSelf(Weak[T])
}

// selfReleaser lets finalize drop the self link once the payload is
// torn down, inside the destruction bracket.
type selfReleaser interface {
	releaseSelf()
}

func bindSelf[T any](s Shared[T]) {
	if sa, ok := any(s.access).(selfBinder[T]); ok {
		sa.bindSelf(s.Weak())
	}
}

func (s *SelfAware[T]) bindSelf(w Weak[T]) {
	// A payload value copied out of another owned instance carries a
	// stale link that owns no weak claim; overwrite it without release.
	s.self = w
}

func (s *SelfAware[T]) releaseSelf() {
	s.self.Release()
}

// SharedFromSelf returns a new strong handle on the owning group.
// The group's strong count grows by one.
func (s *SelfAware[T]) SharedFromSelf() Shared[T] {
	strong, err := FromWeak(s.self)
	if err != nil {
		panic("shared: SharedFromSelf on a payload not owned by a Shared")
	}
	return strong
}

// WeakFromSelf returns a new weak handle on the owning group.
func (s *SelfAware[T]) WeakFromSelf() Weak[T] {
	if s.self.block == nil {
		panic("shared: WeakFromSelf on a payload not owned by a Shared")
	}
	return s.self.Clone()
}
