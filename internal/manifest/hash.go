package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for digests. The version suffix allows changing the
// algorithm without colliding with old digests.
const (
	DomainFixture  = "haddgen/fixture/v1"
	DomainManifest = "haddgen/manifest/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FixtureDigest returns the digest of a rendered fixture file.
func FixtureDigest(content []byte) string {
	return hashWithDomain(DomainFixture, content)
}

// Digest returns the digest of the manifest's canonical JSON form.
// The manifest's own Digest field is not part of the input.
func Digest(m *Manifest) (string, error) {
	canonical, err := MarshalCanonical(m.canonicalMap())
	if err != nil {
		return "", fmt.Errorf("manifest digest: %w", err)
	}
	return hashWithDomain(DomainManifest, canonical), nil
}
