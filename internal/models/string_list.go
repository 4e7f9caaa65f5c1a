package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList decodes fields the API sends either as an array of strings or as
// a single (possibly comma-joined) string.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*s = values
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("cannot decode %s into StringList", trimmed)
	}
	*s = SplitList(value)
	return nil
}

// MarshalJSON always writes an array.
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Join renders the list the way the forms expect it: comma separated.
func (s StringList) Join() string {
	return strings.Join(s, ", ")
}

func (s StringList) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// SplitList splits a comma-joined string, trimming blanks and dropping empties.
func SplitList(value string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
