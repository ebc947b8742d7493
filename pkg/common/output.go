package common

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteOutput writes data to writer as JSON, optionally indented. HTML
// escaping is disabled so ARM expression strings stay readable.
func WriteOutput(writer io.Writer, data interface{}, indent bool) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "\t")
	}
	err := encoder.Encode(data)

	if err != nil {
		return fmt.Errorf("Error writing response: %w", err)
	}

	return nil
}
