package usig

import "strconv"

// Count is a USIG signature counter value.
//
// It is totally ordered and the zero value is the initial counter of a
// freshly constructed signer half.
type Count uint64

// String formats the counter as "(n)".
func (c Count) String() string {
	return "(" + strconv.FormatUint(uint64(c), 10) + ")"
}

// Add returns c + rhs.
func (c Count) Add(rhs uint64) Count {
	return c + Count(rhs)
}

// Envelope is implemented by every backend's signature envelope. It
// exposes the counter that the envelope's authentication artifact is
// bound to.
type Envelope interface {
	Counter() Count
}
