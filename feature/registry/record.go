package registry

import (
	"encoding/json"
	"strings"

	"registry-ingest/core/utils"
)

// Record is a source record after permissive decoding. The tracked fields
// drive change detection; Payload keeps the raw source object for archival.
type Record struct {
	RegistrationNumber string
	Name               string
	Status             string
	Category           string
	City               string
	Payload            string
}

// ParseRecord decodes one raw source object into a Record. All field access
// is permissive: a missing, null or oddly typed field becomes the empty
// string rather than an error, so normalization is centralized here instead
// of scattered over every consumer.
func ParseRecord(raw json.RawMessage) Record {
	var obj map[string]any
	// A non-object element yields a fully-empty record; the payload is kept
	// either way so nothing the source sent is lost.
	_ = json.Unmarshal(raw, &obj)

	return Record{
		RegistrationNumber: cleanField(obj["registration_number"]),
		Name:               cleanField(obj["name"]),
		Status:             cleanField(obj["status"]),
		Category:           cleanField(obj["category"]),
		City:               cleanField(obj["city"]),
		Payload:            string(raw),
	}
}

func cleanField(v any) string {
	return strings.TrimSpace(utils.ToString(v))
}

// toModel builds the persisted row for this record.
func (r Record) toModel(fingerprint string) Company {
	return Company{
		RegistrationNumber: r.RegistrationNumber,
		Name:               r.Name,
		Status:             r.Status,
		Category:           r.Category,
		City:               r.City,
		Fingerprint:        fingerprint,
		Payload:            r.Payload,
	}
}
