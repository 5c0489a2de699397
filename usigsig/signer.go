package usigsig

import (
	"crypto/ed25519"
	"fmt"
	"io"
)

// Signer is a narrow signing interface, modeled on the digital-signature
// schemes this backend can be instantiated over. Ed25519 is the only
// implementation: New and NewEd25519 take Ed25519 keys only, no exported
// constructor accepts another Signer or Verifier, and AddRemoteParty
// accepts only "Ed25519" attestations.
type Signer interface {
	Algorithm() string
	Sign(rand io.Reader, digest []byte) ([]byte, error)
}

// Verifier is the counterpart to Signer.
type Verifier interface {
	Algorithm() string
	Verify(content, signature []byte) error
}

// ed25519Signer adapts an ed25519.PrivateKey to Signer. Ed25519 is a
// pure, not prehashed, scheme: digest here is the full message.
type ed25519Signer struct {
	key ed25519.PrivateKey
}

func (s *ed25519Signer) Algorithm() string { return "Ed25519" }

func (s *ed25519Signer) Sign(_ io.Reader, digest []byte) ([]byte, error) {
	return ed25519.Sign(s.key, digest), nil
}

// ed25519Verifier adapts an ed25519.PublicKey to Verifier.
type ed25519Verifier struct {
	key ed25519.PublicKey
}

func (v *ed25519Verifier) Algorithm() string { return "Ed25519" }

func (v *ed25519Verifier) Verify(content, signature []byte) error {
	if !ed25519.Verify(v.key, content, signature) {
		return fmt.Errorf("usigsig: %w", errVerification)
	}
	return nil
}

var errVerification = fmt.Errorf("signature verification failed")
