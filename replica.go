package usig

import "strconv"

// ReplicaId is an opaque identifier for a remote party, supplied by the
// caller's ecosystem. The core treats it only as a map key and for error
// reporting; it attaches no further meaning to the value.
type ReplicaId uint64

// String renders the id the way it appears in UnknownId error messages.
func (id ReplicaId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
