package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Step is a single project milestone of a booking.
type Step struct {
	Completed bool `json:"completed"`
}

// Record is a booking or lead as returned by the booking backend.
// Decoding is lenient: malformed fields collapse to their zero value so that
// a single bad record never fails a whole fetch.
type Record struct {
	ID             string     `json:"id,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	CertificateURL string     `json:"certificateUrl,omitempty"`
	Certified      bool       `json:"certified,omitempty"`
	Steps          []Step     `json:"steps"`
}

// timestampLayouts are tried in order for string timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	dateOnlyLayout,
}

const dateOnlyLayout = "2006-01-02"

// UnmarshalJSON decodes a backend record. It never returns an error.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil // not an object: keep the empty record, it will be skipped
	}

	r.ID = parseID(fields["id"])
	if r.ID == "" {
		r.ID = parseID(fields["_id"])
	}
	r.CreatedAt = parseTimestamp(fields["createdAt"])
	r.UpdatedAt = parseTimestamp(fields["updatedAt"])

	if raw, ok := fields["certificateUrl"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			r.CertificateURL = s
		}
		r.Certified = truthy(raw)
	}
	if raw, ok := fields["certified"]; ok && truthy(raw) {
		r.Certified = true
	}

	var steps []json.RawMessage
	if json.Unmarshal(fields["steps"], &steps) == nil {
		r.Steps = make([]Step, len(steps))
		for i, raw := range steps {
			var step map[string]json.RawMessage
			if json.Unmarshal(raw, &step) == nil {
				r.Steps[i].Completed = truthy(step["completed"])
			}
		}
	}
	return nil
}

// Timestamp returns UpdatedAt if set, otherwise CreatedAt.
// The second return value is false when the record has no usable date.
func (r Record) Timestamp() (time.Time, bool) {
	if r.UpdatedAt != nil && !r.UpdatedAt.IsZero() {
		return *r.UpdatedAt, true
	}
	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		return *r.CreatedAt, true
	}
	return time.Time{}, false
}

// HasCertificate reports whether the record carries a completion certificate.
func (r Record) HasCertificate() bool {
	return r.Certified || r.CertificateURL != ""
}

// TotalSteps returns the number of steps on the record.
func (r Record) TotalSteps() int {
	return len(r.Steps)
}

// CompletedSteps returns the number of completed steps on the record.
func (r Record) CompletedSteps() int {
	n := 0
	for _, s := range r.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// CompletionPercent returns the overall progress of the record (0-100).
// A certificate always means 100.
func (r Record) CompletionPercent() int {
	if r.HasCertificate() {
		return 100
	}
	total := r.TotalSteps()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(r.CompletedSteps()) / float64(total) * 100))
}

// parseID accepts string or numeric identifiers.
func parseID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// parseTimestamp accepts the string layouts in timestampLayouts or epoch milliseconds.
// null and the zero epoch count as no date, so a null updatedAt falls back to createdAt.
func parseTimestamp(raw json.RawMessage) *time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var ms float64
	if json.Unmarshal(raw, &ms) == nil {
		if ms == 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return nil
		}
		t := time.UnixMilli(int64(ms))
		return &t
	}

	var s string
	if json.Unmarshal(raw, &s) != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, layoutLocation(layout)); err == nil {
			return &t
		}
	}
	return nil
}

// layoutLocation returns the zone a zoneless layout is read in.
// Date-only values are UTC midnight, date-times without an offset are local.
func layoutLocation(layout string) *time.Location {
	if layout == dateOnlyLayout {
		return time.UTC
	}
	return time.Local
}

// truthy mirrors loose truthiness of a JSON value.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default: // objects and arrays
		return true
	}
}
