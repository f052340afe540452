// Package signature verifies OpenPGP detached signatures over eopkg
// archives and repository indexes.
package signature

import "github.com/ProtonMail/go-crypto/openpgp"

// Verifier interface for checking detached signatures
type Verifier interface {
	// VerifyDetached checks sig against data and returns the signing key's entity
	VerifyDetached(data, sig []byte) (*openpgp.Entity, error)
}
