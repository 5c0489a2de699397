package usignoop_test

import (
	"testing"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usignoop"
	"github.com/abcperf/usig-go/usigtest"
)

func TestConformance(t *testing.T) {
	usigtest.RunConformance(t, usigtest.Factory[usignoop.Envelope, usignoop.Attestation]{
		New: func() usig.Usig[usignoop.Envelope, usignoop.Attestation] {
			return usignoop.New()
		},
		NewIndividual: func() (usig.SignHalf[usignoop.Envelope, usignoop.Attestation], usig.VerifyHalf[usignoop.Envelope, usignoop.Attestation]) {
			return usignoop.NewSignHalf(), usignoop.NewVerifyHalf()
		},
	})
}
