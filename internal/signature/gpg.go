package signature

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// GPGVerifier implements Verifier against a public keyring
type GPGVerifier struct {
	keyring openpgp.EntityList
}

var _ Verifier = (*GPGVerifier)(nil)

// NewGPGVerifier loads an armored or binary public keyring from keyPath
func NewGPGVerifier(keyPath string) (*GPGVerifier, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return NewGPGVerifierFromBytes(data)
}

// NewGPGVerifierFromBytes is NewGPGVerifier for an in-memory keyring
func NewGPGVerifierFromBytes(data []byte) (*GPGVerifier, error) {
	// Try to parse as armored keyring first
	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &GPGVerifier{keyring: keyring}, nil
}

// VerifyDetached checks an armored or binary detached signature
func (v *GPGVerifier) VerifyDetached(data, sig []byte) (*openpgp.Entity, error) {
	var (
		signer *openpgp.Entity
		err    error
	)

	if isArmored(sig) {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}

	return signer, nil
}

// Identity returns the primary user id of e, or its key id when it has none
func Identity(e *openpgp.Entity) string {
	if id := e.PrimaryIdentity(); id != nil {
		return id.Name
	}
	return fmt.Sprintf("%X", e.PrimaryKey.KeyId)
}

func isArmored(sig []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(sig)), "-----BEGIN PGP")
}
