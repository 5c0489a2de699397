package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"github.com/abcperf/usig-go/internal/usiglog"
	"github.com/abcperf/usig-go/usigmac"
	"github.com/abcperf/usig-go/usigsig"
	"github.com/abcperf/usig-go/usigwire"
)

// runKeygen generates key material for a backend and writes the
// attestation (the enrollment material a peer needs) to -out.
func runKeygen(args []string) int {
	log := usiglog.New("keygen")

	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	backend := fs.String("backend", "ed25519", "key backend: mac or ed25519")
	keyLen := fs.Int("key-len", 32, "MAC key length in bytes (mac backend only)")
	out := fs.String("out", "", "file to write the attestation to (required)")
	keyOut := fs.String("key-out", "", "file to write the raw signing key to (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *out == "" || *keyOut == "" {
		log.Error("-out and -key-out are required")
		return 2
	}

	var attData []byte
	var keyData []byte
	var err error

	switch *backend {
	case "mac":
		key := make([]byte, *keyLen)
		if _, err = rand.Read(key); err != nil {
			log.WithError(err).Error("failed to generate MAC key")
			return 1
		}
		u, err2 := usigmac.TryNew(key)
		if err2 != nil {
			log.WithError(err2).Error("failed to initialize MAC backend")
			return 1
		}
		att, err2 := u.Attest()
		if err2 != nil {
			log.WithError(err2).Error("failed to produce attestation")
			return 1
		}
		attData, err = usigwire.EncodeAttestation(att.Alg, att.Key)
		keyData = key
	case "ed25519":
		u, err2 := usigsig.NewEd25519()
		if err2 != nil {
			log.WithError(err2).Error("failed to generate Ed25519 key pair")
			return 1
		}
		att, err2 := u.Attest()
		if err2 != nil {
			log.WithError(err2).Error("failed to produce attestation")
			return 1
		}
		attData, err = usigwire.EncodeAttestation(att.Alg, att.Key)
		keyData = u.PrivateKeyBytes()
	default:
		log.Errorf("unknown backend %q", *backend)
		return 2
	}
	if err != nil {
		log.WithError(err).Error("failed to encode attestation")
		return 1
	}

	if err := os.WriteFile(*out, attData, 0o644); err != nil {
		log.WithError(err).Error("failed to write attestation")
		return 1
	}
	if err := os.WriteFile(*keyOut, keyData, 0o600); err != nil {
		log.WithError(err).Error("failed to write key")
		return 1
	}

	fmt.Fprintf(os.Stdout, "wrote attestation to %s, key to %s\n", *out, *keyOut)
	return 0
}
