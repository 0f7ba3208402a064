package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	jsonNullLiteral        = "null"
	timestampLayoutSQLite  = "2006-01-02 15:04:05"
	timestampLayoutISO     = "2006-01-02T15:04:05"
	timestampLayoutISOFrac = "2006-01-02T15:04:05.999999"
	timestampLayoutDate    = "2006-01-02"
)

var (
	ErrInvalidTimestamp = errors.New("invalid_timestamp")
	ErrInvalidText      = errors.New("invalid_text_value")
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	timestampLayoutSQLite,
	timestampLayoutISOFrac,
	timestampLayoutISO,
	timestampLayoutDate,
}

// Timestamp decodes the backend's mixed timestamp formats. SQLite rows arrive as
// "2006-01-02 15:04:05" while computed values arrive as RFC 3339.
type Timestamp struct {
	time.Time
}

// ParseTimestamp accepts every layout the backend is known to emit.
func ParseTimestamp(raw string) (Timestamp, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		parsed, parseErr := time.Parse(layout, trimmed)
		if parseErr == nil {
			return Timestamp{Time: parsed.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

func (timestamp *Timestamp) UnmarshalJSON(payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || string(trimmed) == jsonNullLiteral {
		*timestamp = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(trimmed))
	}
	parsed, parseErr := ParseTimestamp(raw)
	if parseErr != nil {
		return parseErr
	}
	*timestamp = parsed
	return nil
}

func (timestamp Timestamp) MarshalJSON() ([]byte, error) {
	if timestamp.IsZero() {
		return []byte(jsonNullLiteral), nil
	}
	return json.Marshal(timestamp.UTC().Format(time.RFC3339))
}

// Text holds identifiers and amounts that the backend sends either as JSON
// strings or as JSON numbers.
type Text string

func (text *Text) UnmarshalJSON(payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || string(trimmed) == jsonNullLiteral {
		*text = ""
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidText, string(trimmed))
		}
		*text = Text(raw)
		return nil
	}
	var number json.Number
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&number); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidText, string(trimmed))
	}
	*text = Text(number.String())
	return nil
}

func (text Text) String() string {
	return string(text)
}
