package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	rec := Record{
		RegistrationNumber: "CHE-123.456.789",
		Name:               "Acme Holding AG",
		Status:             "active",
		Category:           "holding",
		City:               "Zurich",
	}

	first := rec.Fingerprint()
	second := rec.Fingerprint()

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "SHA-256 hex digest")
}

func TestFingerprint_IgnoresArchivalPayload(t *testing.T) {
	a := Record{RegistrationNumber: "R-1", Name: "Acme", Payload: `{"name":"Acme","noise":1}`}
	b := Record{RegistrationNumber: "R-1", Name: "Acme", Payload: `{"name":"Acme","noise":2}`}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(),
		"untracked payload differences must not change the digest")
}

func TestFingerprint_ChangeSensitivity(t *testing.T) {
	base := Record{
		RegistrationNumber: "R-1",
		Name:               "Acme",
		Status:             "active",
		Category:           "retail",
		City:               "Bern",
	}

	variants := []Record{
		{RegistrationNumber: "R-1", Name: "Acme GmbH", Status: "active", Category: "retail", City: "Bern"},
		{RegistrationNumber: "R-1", Name: "Acme", Status: "dissolved", Category: "retail", City: "Bern"},
		{RegistrationNumber: "R-1", Name: "Acme", Status: "active", Category: "wholesale", City: "Bern"},
		{RegistrationNumber: "R-1", Name: "Acme", Status: "active", Category: "retail", City: "Basel"},
	}

	for _, v := range variants {
		assert.NotEqual(t, base.Fingerprint(), v.Fingerprint(),
			"changing a tracked field must change the digest: %+v", v)
	}
}

func TestFingerprint_FieldShiftDoesNotCollide(t *testing.T) {
	// A separator byte inside a value must not let two different field
	// splits produce the same digest.
	a := Record{Name: "x\x1fy"}
	b := Record{Name: "x", Status: "y"}

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_MissingFieldsNormalizeToEmpty(t *testing.T) {
	// A record parsed from JSON with null/missing tracked fields must hash
	// identically to one built with empty strings.
	parsed := ParseRecord(json.RawMessage(`{"registration_number":"R-9","name":null}`))
	manual := Record{RegistrationNumber: "R-9"}

	assert.Equal(t, manual.Fingerprint(), parsed.Fingerprint())
}
