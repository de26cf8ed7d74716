package manifest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/pkgdata/internal/checksum"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// identityNamespace is the UUID v5 namespace for manifest identities.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pkgdata/manifest-identity/v1"))

// Fingerprint returns the SHA-256 of the compact JSON encoding of m.
// Equal manifests always share a fingerprint; package order is significant.
func Fingerprint(m *pkgdata.Manifest) (string, error) {
	if m == nil {
		m = pkgdata.NewManifest()
	}
	data, err := m.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return checksum.New().CalculateRaw(data), nil
}

// ID returns a deterministic UUID v5 derived from the manifest fingerprint.
func ID(m *pkgdata.Manifest) (uuid.UUID, error) {
	fp, err := Fingerprint(m)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(identityNamespace, []byte(fp)), nil
}

// SameRendering reports whether stored and rendered differ only in line
// endings and trailing whitespace.
func SameRendering(stored, rendered []byte) bool {
	calc := checksum.New()
	return calc.CalculateNormalized(stored) == calc.CalculateNormalized(rendered)
}
