// Package usig implements the Unique Sequential Identifier Generator
// contract: a signing service whose every signature irrevocably binds a
// monotonically increasing counter to the signed message.
//
// A USIG is split into a signing half and a verifying half (see Split).
// A correct signer never issues two distinct messages under the same
// counter, and a verifier can detect gaps and replays by inspecting the
// counter carried in each envelope. This package defines the
// backend-agnostic contract only; concrete backends live in the usigmac,
// usigsig, and usignoop sub-packages, and a reusable conformance suite
// for testing any backend lives in usigtest.
package usig
