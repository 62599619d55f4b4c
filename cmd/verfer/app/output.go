package app

import (
	"encoding/json"
	"fmt"
	"io"
)

type field struct {
	key   string
	value any
}

// render writes fields as aligned "key: value" lines, or as a JSON object.
func render(w io.Writer, format string, fields []field) error {
	switch format {
	case "json":
		obj := make(map[string]any, len(fields))
		for _, f := range fields {
			obj[f.key] = f.value
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(obj)
	case "text":
		width := 0
		for _, f := range fields {
			width = max(width, len(f.key))
		}
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "%-*s  %v\n", width+1, f.key+":", f.value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
