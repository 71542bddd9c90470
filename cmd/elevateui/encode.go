package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// encodeStructured writes v as JSON or YAML. It reports false for formats it
// does not handle, leaving plain and html output to the caller.
func encodeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, err
		}
		return true, encoder.Close()
	case "plain", "html", "":
		return false, nil
	default:
		return true, fmt.Errorf("unsupported format %q (want plain, json, yaml or html)", format)
	}
}
