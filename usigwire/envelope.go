package usigwire

import (
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned by DecodeEnvelope when data is not a
// well-formed two-element envelope array.
var ErrMalformedEnvelope = errors.New("usigwire: malformed envelope")

// envelope is the wire representation of a counter-bound authentication
// artifact:
//
//	USIG_Envelope = [
//	    counter: uint,
//	    body: bstr,
//	]
//
// No headers, recipients, or payload field are carried: the envelope is
// a minimal two-party counter binding, not a general COSE message.
type envelope struct {
	_       struct{} `cbor:",toarray"`
	Counter uint64
	Body    []byte
}

// EncodeEnvelope returns the deterministic byte form of (counter, body).
func EncodeEnvelope(counter uint64, body []byte) ([]byte, error) {
	return Marshal(envelope{Counter: counter, Body: body})
}

// DecodeEnvelope parses the byte form produced by EncodeEnvelope.
func DecodeEnvelope(data []byte) (counter uint64, body []byte, err error) {
	var raw envelope
	if err := Unmarshal(data, &raw); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return raw.Counter, raw.Body, nil
}

// attestation is the wire representation of opaque enrollment material:
// a raw key for the MAC backend, an encoded public key for the signature
// backend.
type attestation struct {
	_   struct{} `cbor:",toarray"`
	Alg string
	Key []byte
}

// EncodeAttestation returns the deterministic byte form of an
// attestation tagged with its backend algorithm name (e.g. "HMAC-SHA256",
// "Ed25519"), so a decoder can reject an attestation meant for a
// different backend before ever touching cryptographic material.
func EncodeAttestation(alg string, key []byte) ([]byte, error) {
	return Marshal(attestation{Alg: alg, Key: key})
}

// DecodeAttestation parses the byte form produced by EncodeAttestation.
func DecodeAttestation(data []byte) (alg string, key []byte, err error) {
	var raw attestation
	if err := Unmarshal(data, &raw); err != nil {
		return "", nil, err
	}
	return raw.Alg, raw.Key, nil
}
