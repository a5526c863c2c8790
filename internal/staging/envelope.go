package staging

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// splitEnvelope decodes a raw-zone object into its data array and the shared
// metadata: every top-level field except "data". Numbers are decoded with
// UseNumber so the validators quantize from the original token, never from a
// float64.
func splitEnvelope(body []byte) (meta map[string]any, data []map[string]any, err error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}

	rawData, ok := payload["data"]
	if !ok {
		return nil, nil, fmt.Errorf("envelope has no data array")
	}
	delete(payload, "data")

	items, ok := rawData.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("envelope data is not an array")
	}

	data = make([]map[string]any, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("data[%d] is not an object", i)
		}
		data = append(data, record)
	}

	return payload, data, nil
}
