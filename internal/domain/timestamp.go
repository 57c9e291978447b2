package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout matches ISO 8601 timestamps written without a zone offset,
// such as "2025-07-10T12:00:00.123456". They are read as UTC.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// parseTimestamp accepts RFC 3339 and zone-less ISO 8601 timestamps. An empty
// string yields the zero time.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_at %q: not an ISO 8601 timestamp", s)
	}
	return t, nil
}

// UnmarshalJSON decodes a Park, accepting zone-less created_at values.
func (p *Park) UnmarshalJSON(data []byte) error {
	type plain Park
	aux := struct {
		*plain
		CreatedAt string `json:"created_at"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := parseTimestamp(aux.CreatedAt)
	if err != nil {
		return err
	}
	p.CreatedAt = t
	return nil
}

// UnmarshalJSON decodes a Visit, accepting zone-less created_at values.
func (v *Visit) UnmarshalJSON(data []byte) error {
	type plain Visit
	aux := struct {
		*plain
		CreatedAt string `json:"created_at"`
	}{plain: (*plain)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := parseTimestamp(aux.CreatedAt)
	if err != nil {
		return err
	}
	v.CreatedAt = t
	return nil
}
