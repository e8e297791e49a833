// Package jsonx decodes the loosely typed list columns (tags, target countries,
// permissions) that are persisted as JSON text.
package jsonx

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DecodeStringList parses raw as a JSON array of strings. A JSON string whose
// content is itself an array (double-encoded payloads) is unwrapped once.
// ok is false for anything else; callers decide between nil and empty.
func DecodeStringList(raw []byte) (list []string, ok bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return clean(list), true
	}
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
		return nil, false
	}
	inner = strings.TrimSpace(inner)
	if !strings.HasPrefix(inner, "[") {
		return nil, false
	}
	if err := json.Unmarshal([]byte(inner), &list); err != nil {
		return nil, false
	}
	return clean(list), true
}

// StringListOrEmpty decodes a stored column; parse failures yield an empty list.
func StringListOrEmpty(raw string) []string {
	list, ok := DecodeStringList([]byte(raw))
	if !ok {
		return []string{}
	}
	return list
}

// EncodeStringList renders list as JSON text for storage. nil encodes as "".
// HTML characters are kept literal so stored text matches EncodeString output.
func EncodeStringList(list []string) string {
	if list == nil {
		return ""
	}
	out, err := encode(list)
	if err != nil {
		return "[]"
	}
	return out
}

// EncodeString renders s as a JSON string literal, exactly as it appears
// inside EncodeStringList output.
func EncodeString(s string) string {
	out, err := encode(s)
	if err != nil {
		return `""`
	}
	return out
}

func encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func clean(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
