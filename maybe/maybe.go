/*
Package maybe implements optional values.

tinyq uses optional values where a caller may leave out arguments, e.g. when
setting only one coordinate of an element's position:

	q.SetPosition(maybe.Just(100.0), maybe.Nothing[float64](), true)

Optional values are matched like this:

	var x float64
	switch m := opt.Match(); m {
	case m.Just(&x):
		…
	case m.Nothing():
		…
	}

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe is an optional value of type T. The zero value is Nothing.
type Maybe[T any] struct {
	value T
	set   bool
}

// Just wraps a value.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, set: true}
}

// Nothing is an absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Of creates an optional value from the comma-ok idiom.
func Of[T any](x T, ok bool) Maybe[T] {
	if !ok {
		return Nothing[T]()
	}
	return Just(x)
}

// FromPointer is Nothing for nil, Just(*p) otherwise.
func FromPointer[T any](p *T) Maybe[T] {
	if p == nil {
		return Nothing[T]()
	}
	return Just(*p)
}

// IsJust is true if m holds a value.
func (m Maybe[T]) IsJust() bool {
	return m.set
}

// Get unwraps m in comma-ok style.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.set
}

// WithDefault unwraps m, substituting def for Nothing.
func (m Maybe[T]) WithDefault(def T) T {
	if m.set {
		return m.value
	}
	return def
}

// Map applies f to the value of m, if any.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.set {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation which may fail onto an optional value.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher for pattern matching on m.
func (m Maybe[T]) Match() *Matcher[T] {
	return &Matcher[T]{m: m}
}

// Matcher matches the variants of Maybe.
type Matcher[T any] struct {
	m Maybe[T]
}

// Just matches a present value and extracts it into v.
func (mm *Matcher[T]) Just(v *T) *Matcher[T] {
	if mm.m.set {
		if v != nil {
			*v = mm.m.value
		}
		return mm
	}
	return nil
}

// Nothing matches an absent value.
func (mm *Matcher[T]) Nothing() *Matcher[T] {
	if !mm.m.set {
		return mm
	}
	return nil
}
