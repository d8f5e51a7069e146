package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMetadataNotObject is returned when metadata.json holds valid JSON that is
// not an object.
var ErrMetadataNotObject = errors.New("metadata is not a JSON object")

// Explicit is the author-provided metadata.json of a component or milestone.
// Every field is optional.
type Explicit struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Size         string     `json:"size"`
	Tags         StringList `json:"tags"`
	HasTests     *bool      `json:"hasTests"`
	HasStories   *bool      `json:"hasStories"`
	LastModified string     `json:"lastModified"`
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings: %w", err)
	}
	var out []string
	for _, part := range strings.Split(joined, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

// ParseExplicit decodes metadata.json content.
func ParseExplicit(data []byte) (*Explicit, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if json.Valid(trimmed) {
			return nil, ErrMetadataNotObject
		}
	}
	var ex Explicit
	if err := json.Unmarshal(trimmed, &ex); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &ex, nil
}

var explicitTimeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Time parses LastModified. Unparseable or empty values report false.
func (e *Explicit) Time() (time.Time, bool) {
	if e == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(e.LastModified)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range explicitTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return canonicalTime(t), true
		}
	}
	return time.Time{}, false
}

// canonicalTime is the representation used for every emitted timestamp.
func canonicalTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
