// Package source loads booking records from the booking backend or from files.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viratco/klord/schema"
)

// ErrUnexpectedPayload is returned when a payload is neither a record array nor an envelope.
var ErrUnexpectedPayload = errors.New("payload is not a record array or a {\"data\": [...]} envelope")

// envelope is the wrapped response shape of the booking backend.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Leads json.RawMessage `json:"leads"`
}

// DecodeRecords decodes either a bare JSON array of records or an object whose
// "data" (or "leads") field holds that array. Individual records decode leniently.
func DecodeRecords(data []byte) ([]schema.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUnexpectedPayload
	}

	switch data[0] {
	case '[':
		return decodeArray(data)
	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode envelope: %w", err)
		}
		for _, raw := range []json.RawMessage{env.Data, env.Leads} {
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '[' {
				return decodeArray(raw)
			}
		}
		return nil, ErrUnexpectedPayload
	default:
		return nil, ErrUnexpectedPayload
	}
}

func decodeArray(data []byte) ([]schema.Record, error) {
	var records []schema.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if records == nil {
		records = []schema.Record{}
	}
	return records, nil
}
