package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var fence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n(.*?)\\n?```$")

// Unfence strips a single markdown code fence wrapping the whole answer.
func Unfence(ans string) string {
	trimmed := strings.TrimSpace(ans)
	if m := fence.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// SanitizeAnswer returns the outermost JSON object found in ans.
func SanitizeAnswer(ans string) (string, error) {
	s := Unfence(ans)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", errors.New("error sanitizing answer")
	}
	return s[start : end+1], nil
}

// Decode unmarshals a model answer into v after removing a code fence.
func Decode(ans string, v any) error {
	if err := json.Unmarshal([]byte(Unfence(ans)), v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
