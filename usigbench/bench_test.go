// Package usigbench micro-benchmarks sign/verify throughput for each
// USIG backend.
package usigbench

import (
	"crypto/rand"
	"testing"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/usigmac"
	"github.com/abcperf/usig-go/usignoop"
	"github.com/abcperf/usig-go/usigsig"
)

func macKey(b *testing.B) []byte {
	b.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		b.Fatal(err)
	}
	return key
}

func BenchmarkMACSign(b *testing.B) {
	u, err := usigmac.TryNew(macKey(b))
	if err != nil {
		b.Fatal(err)
	}
	msg := usig.RawMessage(make([]byte, 256))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.Sign(msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMACVerify(b *testing.B) {
	u, err := usigmac.TryNew(macKey(b))
	if err != nil {
		b.Fatal(err)
	}
	att, err := u.Attest()
	if err != nil {
		b.Fatal(err)
	}
	if !u.AddRemoteParty(usig.ReplicaId(0), att) {
		b.Fatal("enrollment rejected")
	}
	msg := usig.RawMessage(make([]byte, 256))
	env, err := u.Sign(msg)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := u.Verify(usig.ReplicaId(0), msg, env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEd25519Sign(b *testing.B) {
	u, err := usigsig.NewEd25519()
	if err != nil {
		b.Fatal(err)
	}
	msg := usig.RawMessage(make([]byte, 256))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.Sign(msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEd25519Verify(b *testing.B) {
	u, err := usigsig.NewEd25519()
	if err != nil {
		b.Fatal(err)
	}
	att, err := u.Attest()
	if err != nil {
		b.Fatal(err)
	}
	if !u.AddRemoteParty(usig.ReplicaId(0), att) {
		b.Fatal("enrollment rejected")
	}
	msg := usig.RawMessage(make([]byte, 256))
	env, err := u.Sign(msg)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := u.Verify(usig.ReplicaId(0), msg, env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNoOpSign(b *testing.B) {
	u := usignoop.New()
	msg := usig.RawMessage(make([]byte, 256))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.Sign(msg); err != nil {
			b.Fatal(err)
		}
	}
}
