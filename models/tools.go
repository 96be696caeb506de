package models

import (
	"encoding/json"
	"strings"
)

// Tools is the ordered list of technologies a project used.
// Entries are trimmed and empty entries are dropped.
type Tools []string

// ParseTools splits a comma-separated list such as "SQL, Excel, Power BI".
func ParseTools(s string) Tools {
	if strings.TrimSpace(s) == "" {
		return Tools{}
	}
	parts := strings.Split(s, ",")
	tools := make(Tools, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}

// Normalize splits entries that contain commas, trims every entry and drops
// the empty ones, so the list matches its comma-separated stored form.
func (t Tools) Normalize() Tools {
	out := make(Tools, 0, len(t))
	for _, tool := range t {
		out = append(out, ParseTools(tool)...)
	}
	return out
}

// String joins the list back into its comma-separated form.
func (t Tools) String() string {
	return strings.Join(t.Normalize(), ", ")
}

// UnmarshalJSON accepts either a JSON array of names or a single
// comma-separated string, since editors submit the raw input field.
func (t *Tools) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Tools{}
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*t = ParseTools(joined)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Tools(list).Normalize()
	return nil
}
