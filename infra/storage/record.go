package storage

import (
	"encoding/json"
	"fmt"
)

// RecordSchema is the current schema version stamped on every persisted
// record. Bump it together with a migration case in DecodeRecord.
const RecordSchema = 1

// envelope wraps a persisted payload with its schema version. Records
// written before versioning existed are bare payloads; DecodeRecord
// treats those as schema 0 and migrates them on read.
type envelope struct {
	Schema int             `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// EncodeRecord marshals v inside a schema-versioned envelope.
func EncodeRecord(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return json.Marshal(envelope{Schema: RecordSchema, Data: payload})
}

// DecodeRecord unmarshals a persisted record into v, migrating legacy
// formats. An unknown future schema is an error; the caller falls back
// to its compiled-in default, same as for corrupt data.
func DecodeRecord(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		switch env.Schema {
		case RecordSchema:
			return json.Unmarshal(env.Data, v)
		default:
			return fmt.Errorf("unknown record schema %d", env.Schema)
		}
	}

	// Schema 0: a bare payload written before envelopes existed.
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding legacy record: %w", err)
	}
	return nil
}
