package project

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodeTier3Owners parses the JSON-encoded owner list stored in the
// tier3_owners column. NULL, "" and "[]" all mean no owners. A bare integer
// without brackets is accepted as a single-element list for legacy rows.
// Malformed input decodes as empty; it must never abort aggregation.
func DecodeTier3Owners(raw string) []int64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "[]" {
		return nil
	}

	if !strings.HasPrefix(s, "[") {
		id, err := strconv.ParseInt(strings.Trim(s, `"`), 10, 64)
		if err != nil {
			return nil
		}
		return []int64{id}
	}

	var ids []int64
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil
	}
	return ids
}

// EncodeTier3Owners serializes an owner list for storage. An empty list
// encodes as "[]".
func EncodeTier3Owners(ids []int64) string {
	if len(ids) == 0 {
		return "[]"
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(b)
}
