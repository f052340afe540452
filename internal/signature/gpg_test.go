package signature

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntity(t *testing.T, name, email string) *openpgp.Entity {
	t.Helper()
	entity, err := openpgp.NewEntity(name, "", email, nil)
	require.NoError(t, err)
	return entity
}

func armoredPublicKey(t *testing.T, entity *openpgp.Entity) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestGPGVerifier_VerifyDetached(t *testing.T) {
	entity := newEntity(t, "Jane Packager", "jane@example.com")
	data := []byte("PK\x03\x04 pretend this is an eopkg archive")

	verifier, err := NewGPGVerifierFromBytes(armoredPublicKey(t, entity))
	require.NoError(t, err)

	t.Run("armored signature", func(t *testing.T) {
		var sig bytes.Buffer
		require.NoError(t, openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(data), nil))

		signer, err := verifier.VerifyDetached(data, sig.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "Jane Packager <jane@example.com>", Identity(signer))
	})
	t.Run("binary signature", func(t *testing.T) {
		var sig bytes.Buffer
		require.NoError(t, openpgp.DetachSign(&sig, entity, bytes.NewReader(data), nil))

		_, err := verifier.VerifyDetached(data, sig.Bytes())
		assert.NoError(t, err)
	})
	t.Run("tampered data", func(t *testing.T) {
		var sig bytes.Buffer
		require.NoError(t, openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(data), nil))

		_, err := verifier.VerifyDetached(append([]byte{}, append(data, '!')...), sig.Bytes())
		assert.Error(t, err)
	})
	t.Run("unknown key", func(t *testing.T) {
		other := newEntity(t, "Mallory", "mallory@example.com")
		var sig bytes.Buffer
		require.NoError(t, openpgp.ArmoredDetachSign(&sig, other, bytes.NewReader(data), nil))

		_, err := verifier.VerifyDetached(data, sig.Bytes())
		assert.Error(t, err)
	})
}

func TestNewGPGVerifier(t *testing.T) {
	entity := newEntity(t, "Jane Packager", "jane@example.com")

	path := filepath.Join(t.TempDir(), "keyring.asc")
	require.NoError(t, os.WriteFile(path, armoredPublicKey(t, entity), 0644))

	_, err := NewGPGVerifier(path)
	assert.NoError(t, err)

	_, err = NewGPGVerifier("")
	assert.Error(t, err)

	_, err = NewGPGVerifier(filepath.Join(t.TempDir(), "missing.asc"))
	assert.Error(t, err)

	_, err = NewGPGVerifierFromBytes([]byte("not a key"))
	assert.Error(t, err)
}
