package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/internal/usiglog"
	"github.com/abcperf/usig-go/usigmac"
	"github.com/abcperf/usig-go/usigsig"
	"github.com/abcperf/usig-go/usigwire"
)

// runVerify enrolls an attestation under -id and checks an envelope
// against a message file. Like runSign, it is stateless across
// invocations: every run starts from a fresh, empty verifier.
func runVerify(args []string) int {
	log := usiglog.New("verify")

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	backend := fs.String("backend", "ed25519", "key backend: mac or ed25519")
	attFile := fs.String("att", "", "attestation file (required)")
	msgFile := fs.String("msg", "", "message file the envelope claims to cover (required)")
	envFile := fs.String("env", "", "envelope file to verify (required)")
	id := fs.Uint64("id", 0, "replica id the attestation is enrolled under")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *attFile == "" || *msgFile == "" || *envFile == "" {
		log.Error("-att, -msg and -env are required")
		return 2
	}

	attData, err := os.ReadFile(*attFile)
	if err != nil {
		log.WithError(err).Error("failed to read attestation")
		return 1
	}
	msg, err := os.ReadFile(*msgFile)
	if err != nil {
		log.WithError(err).Error("failed to read message")
		return 1
	}
	envData, err := os.ReadFile(*envFile)
	if err != nil {
		log.WithError(err).Error("failed to read envelope")
		return 1
	}
	alg, key, err := usigwire.DecodeAttestation(attData)
	if err != nil {
		log.WithError(err).Error("failed to decode attestation")
		return 1
	}
	message := usig.RawMessage(msg)
	replicaID := usig.ReplicaId(*id)

	var verifyErr error

	switch *backend {
	case "mac":
		u := usigmac.NewVerifyHalf(usigmac.AlgorithmHMACSHA256)
		if !u.AddRemoteParty(replicaID, usigmac.Attestation{Alg: alg, Key: key}) {
			log.Error("attestation rejected on enrollment")
			return 1
		}
		var env usigmac.Envelope
		if err2 := env.UnmarshalBinary(envData); err2 != nil {
			log.WithError(err2).Error("failed to decode envelope")
			return 1
		}
		verifyErr = u.Verify(replicaID, message, env)
	case "ed25519":
		u := usigsig.NewVerifyHalf()
		if !u.AddRemoteParty(replicaID, usigsig.Attestation{Alg: alg, Key: key}) {
			log.Error("attestation rejected on enrollment")
			return 1
		}
		var env usigsig.Envelope
		if err2 := env.UnmarshalBinary(envData); err2 != nil {
			log.WithError(err2).Error("failed to decode envelope")
			return 1
		}
		verifyErr = u.Verify(replicaID, message, env)
	default:
		log.Errorf("unknown backend %q", *backend)
		return 2
	}

	if verifyErr != nil {
		log.WithError(verifyErr).Error("verification failed")
		return 1
	}

	fmt.Fprintln(os.Stdout, "verification succeeded")
	return 0
}
