package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fieldSeparator joins the tracked fields before hashing. The ASCII unit
// separator never appears in sane field values, and escapeField guarantees
// it cannot appear unescaped even in hostile ones.
const fieldSeparator = "\x1f"

// Fingerprint returns the SHA-256 hex digest over the record's tracked
// fields in fixed order. It is pure: two records with identical tracked
// values always produce byte-identical digests, regardless of any archival
// payload differences.
func (r Record) Fingerprint() string {
	tracked := []string{
		r.RegistrationNumber,
		r.Name,
		r.Status,
		r.Category,
		r.City,
	}
	for i, v := range tracked {
		tracked[i] = escapeField(v)
	}

	sum := sha256.Sum256([]byte(strings.Join(tracked, fieldSeparator)))
	return hex.EncodeToString(sum[:])
}

// escapeField makes the separator join injective: a separator byte inside a
// field value can never collide with a field boundary.
func escapeField(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, fieldSeparator, `\u`)
}
