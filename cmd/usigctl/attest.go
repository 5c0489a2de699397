package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abcperf/usig-go/internal/usiglog"
	"github.com/abcperf/usig-go/usigwire"
)

// runAttest reads an attestation file written by keygen and prints its
// algorithm and key in human-readable form.
func runAttest(args []string) int {
	log := usiglog.New("attest")

	fs := flag.NewFlagSet("attest", flag.ContinueOnError)
	in := fs.String("in", "", "attestation file to inspect (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" {
		log.Error("-in is required")
		return 2
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.WithError(err).Error("failed to read attestation")
		return 1
	}
	alg, key, err := usigwire.DecodeAttestation(data)
	if err != nil {
		log.WithError(err).Error("failed to decode attestation")
		return 1
	}

	fmt.Fprintf(os.Stdout, "algorithm: %s\nkey (%d bytes): %x\n", alg, len(key), key)
	return 0
}
