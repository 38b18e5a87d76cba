package utils

import (
	"encoding/json"
	"strings"
)

// NormalizeAmenities canonicalizes the amenities form input into a flat list
// of strings. Clients send it as repeated form values, a JSON array string, a
// comma-delimited string, or a single value; all collapse to the same shape.
func NormalizeAmenities(values []string) []string {
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
			var parsed []string
			if err := json.Unmarshal([]byte(v), &parsed); err == nil {
				for _, p := range parsed {
					if p = strings.TrimSpace(p); p != "" {
						out = append(out, p)
					}
				}
				continue
			}
			out = append(out, v)
			continue
		}
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
