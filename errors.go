package usig

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by a USIG backend. Each is raised at exactly one
// call site; see the package documentation of usigmac and usigsig for
// details.
var (
	// ErrUnknownID is wrapped with the offending ReplicaId, e.g. via
	// UnknownIDError.
	ErrUnknownID = errors.New("unknown id")

	// ErrInvalidSignature is returned when a backend rejects an
	// envelope's authentication artifact.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrRemoteAttestationFailed is for backends whose Attest can fail;
	// Attest of both in-tree backends never fails. usigsig.NewEd25519
	// also wraps it around a key generation failure.
	ErrRemoteAttestationFailed = errors.New("remote attestation failed")

	// ErrSigningFailed is returned when a backend refuses to sign,
	// including when advancing the counter would overflow uint64.
	ErrSigningFailed = errors.New("signing failed")
)

// UnknownIDError wraps ErrUnknownID with the ReplicaId that was not
// enrolled. It unwraps to ErrUnknownID so callers can keep using
// errors.Is(err, usig.ErrUnknownID).
func UnknownIDError(id ReplicaId) error {
	return fmt.Errorf("%w '%v'", ErrUnknownID, id)
}
