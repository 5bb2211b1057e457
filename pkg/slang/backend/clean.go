package backend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ganklab/gankspeak/pkg/slang"
)

// stripFence removes a surrounding markdown code fence from model output.
// Schema-constrained responses usually come back bare, but a fenced block
// still slips through occasionally.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeJSON unmarshals model output into v, repairing malformed JSON
// before giving up. Unrecoverable output maps to slang.ErrInvalidFormat,
// which the retry policy never retries.
func decodeJSON(raw string, v any) error {
	data := stripFence(raw)
	err := json.Unmarshal([]byte(data), v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(data)
		if rerr == nil {
			if err = json.Unmarshal([]byte(fixed), v); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", slang.ErrInvalidFormat, err)
}
