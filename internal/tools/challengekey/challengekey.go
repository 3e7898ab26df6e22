// Package challengekey generates the ed25519 keypair that signs and
// verifies challenge grants.
package challengekey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/louisbranch/equinox.space/internal/services/game/challenge"
)

// Run generates a challenge grant key pair and writes shell exports for
// the env variables the game service reads.
func Run(out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate challenge key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export %s=%s\n", challenge.EnvPrivateKey, base64.RawStdEncoding.EncodeToString(privateKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "export %s=%s\n", challenge.EnvPublicKey, base64.RawStdEncoding.EncodeToString(publicKey)); err != nil {
		return err
	}
	return nil
}
