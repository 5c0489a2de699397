package main

import (
	"crypto/ed25519"
	"flag"
	"fmt"
	"os"

	"github.com/abcperf/usig-go"
	"github.com/abcperf/usig-go/internal/usiglog"
	"github.com/abcperf/usig-go/usigmac"
	"github.com/abcperf/usig-go/usigsig"
)

// runSign signs a message file and writes the resulting envelope. Each
// invocation starts its signer's counter at zero: usigctl is a
// single-shot demo tool, not a replica process, so it never persists
// counter state across invocations.
func runSign(args []string) int {
	log := usiglog.New("sign")

	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	backend := fs.String("backend", "ed25519", "key backend: mac or ed25519")
	keyFile := fs.String("key", "", "raw signing key file (required)")
	msgFile := fs.String("msg", "", "message file to sign (required)")
	out := fs.String("out", "", "file to write the envelope to (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *keyFile == "" || *msgFile == "" || *out == "" {
		log.Error("-key, -msg and -out are required")
		return 2
	}

	key, err := os.ReadFile(*keyFile)
	if err != nil {
		log.WithError(err).Error("failed to read key")
		return 1
	}
	msg, err := os.ReadFile(*msgFile)
	if err != nil {
		log.WithError(err).Error("failed to read message")
		return 1
	}
	message := usig.RawMessage(msg)

	var envData []byte

	switch *backend {
	case "mac":
		u, err2 := usigmac.TryNew(key)
		if err2 != nil {
			log.WithError(err2).Error("failed to initialize MAC backend")
			return 1
		}
		env, err2 := u.Sign(message)
		if err2 != nil {
			log.WithError(err2).Error("failed to sign")
			return 1
		}
		envData, err = env.MarshalBinary()
	case "ed25519":
		if len(key) != ed25519.PrivateKeySize {
			log.Errorf("invalid Ed25519 private key length %d", len(key))
			return 2
		}
		priv := ed25519.PrivateKey(key)
		pub := priv.Public().(ed25519.PublicKey)
		u, err2 := usigsig.New(priv, pub)
		if err2 != nil {
			log.WithError(err2).Error("failed to initialize Ed25519 backend")
			return 1
		}
		env, err2 := u.Sign(message)
		if err2 != nil {
			log.WithError(err2).Error("failed to sign")
			return 1
		}
		envData, err = env.MarshalBinary()
	default:
		log.Errorf("unknown backend %q", *backend)
		return 2
	}
	if err != nil {
		log.WithError(err).Error("failed to encode envelope")
		return 1
	}

	if err := os.WriteFile(*out, envData, 0o644); err != nil {
		log.WithError(err).Error("failed to write envelope")
		return 1
	}

	fmt.Fprintf(os.Stdout, "wrote envelope to %s\n", *out)
	return 0
}
